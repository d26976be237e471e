package resolver

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"runtime"
	"sync"

	"github.com/NARUBROWN/spindle/core"
)

// NameDiscoverer는 메서드의 파라미터 이름을 한 번에 찾아냅니다.
// 결과 길이는 파라미터 수와 같아야 하며, 알 수 없는 위치는 빈 문자열입니다.
// 아무것도 알 수 없으면 nil을 돌려줍니다.
type NameDiscoverer interface {
	ParameterNames(meta core.HandlerMeta) []string
}

// DefaultNameDiscoverer는 선언된 이름을 먼저 쓰고, 빈 자리는 소스 코드에서 찾습니다.
var DefaultNameDiscoverer NameDiscoverer = CompositeNameDiscoverer{
	DeclaredNameDiscoverer{},
	NewSourceNameDiscoverer(),
}

// DeclaredNameDiscoverer는 라우트 등록 시 core.Param으로 선언한 이름을 사용합니다.
type DeclaredNameDiscoverer struct{}

func (DeclaredNameDiscoverer) ParameterNames(meta core.HandlerMeta) []string {
	if len(meta.Params) == 0 {
		return nil
	}

	names := make([]string, meta.NumParams())
	found := false
	for i := range names {
		if declared, ok := meta.DeclaredParam(i); ok && declared.Name != "" {
			names[i] = declared.Name
			found = true
		}
	}
	if !found {
		return nil
	}
	return names
}

// CompositeNameDiscoverer는 앞의 discoverer가 채우지 못한 자리를 뒤의 discoverer로 채웁니다.
type CompositeNameDiscoverer []NameDiscoverer

func (c CompositeNameDiscoverer) ParameterNames(meta core.HandlerMeta) []string {
	count := meta.NumParams()
	names := make([]string, count)
	missing := count

	for _, discoverer := range c {
		if missing == 0 {
			break
		}
		discovered := discoverer.ParameterNames(meta)
		if len(discovered) != count {
			continue
		}
		for i, name := range discovered {
			if names[i] == "" && name != "" {
				names[i] = name
				missing--
			}
		}
	}

	if missing == count {
		return nil
	}
	return names
}

// SourceNameDiscoverer는 메서드가 선언된 Go 소스 파일을 파싱해 파라미터 이름을 찾습니다.
// 소스가 배포되지 않은 바이너리에서는 nil을 돌려주며, 이는 정상적인 저하 모드입니다.
type SourceNameDiscoverer struct {
	cache sync.Map // map[uintptr][]string
}

func NewSourceNameDiscoverer() *SourceNameDiscoverer {
	return &SourceNameDiscoverer{}
}

func (d *SourceNameDiscoverer) ParameterNames(meta core.HandlerMeta) []string {
	if !meta.Method.Func.IsValid() || meta.ControllerType == nil {
		return nil
	}

	pc := meta.Method.Func.Pointer()
	if cached, ok := d.cache.Load(pc); ok {
		return cached.([]string)
	}

	names := d.discover(meta)
	d.cache.Store(pc, names)
	return names
}

func (d *SourceNameDiscoverer) discover(meta core.HandlerMeta) []string {
	receiverName := meta.ControllerType.Name()
	file := sourceFile(meta.Method.Func.Pointer())

	// 값 receiver 메서드를 포인터 타입으로 꺼내면 컴파일러가 만든 래퍼를 가리킵니다.
	if meta.ControllerType.Kind() == reflect.Pointer {
		receiverName = meta.ControllerType.Elem().Name()
		if file == "" || file == "<autogenerated>" {
			if m, ok := meta.ControllerType.Elem().MethodByName(meta.Method.Name); ok {
				file = sourceFile(m.Func.Pointer())
			}
		}
	}
	if file == "" || file == "<autogenerated>" || receiverName == "" {
		return nil
	}

	parsed, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil
	}

	for _, decl := range parsed.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 || fn.Name.Name != meta.Method.Name {
			continue
		}
		if receiverTypeName(fn.Recv.List[0].Type) != receiverName {
			continue
		}
		return fieldNames(fn.Type.Params, meta.NumParams())
	}

	return nil
}

func sourceFile(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	file, _ := fn.FileLine(fn.Entry())
	return file
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	case *ast.ParenExpr:
		return receiverTypeName(t.X)
	default:
		return ""
	}
}

func fieldNames(params *ast.FieldList, count int) []string {
	if params == nil {
		return nil
	}

	names := make([]string, 0, count)
	found := false
	for _, field := range params.List {
		if len(field.Names) == 0 {
			names = append(names, "")
			continue
		}
		for _, ident := range field.Names {
			if ident.Name == "_" {
				names = append(names, "")
				continue
			}
			names = append(names, ident.Name)
			found = true
		}
	}

	if !found || len(names) != count {
		return nil
	}
	return names
}
