package core

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Param은 등록 시점에 선언하는 파라미터 메타데이터입니다.
// Name이 비어 있으면 이름은 자동 탐색에 맡깁니다.
type Param struct {
	Name string
	Tag  reflect.StructTag
}

// HandlerMeta는 호출 대상 컨트롤러 메서드를 설명합니다.
type HandlerMeta struct {
	ControllerType reflect.Type
	Method         reflect.Method
	Params         []Param
}

// NewHandlerMeta는 (*Controller).Method 형태의 메서드 표현식에서 HandlerMeta를 만듭니다.
func NewHandlerMeta(handler any, params ...Param) (HandlerMeta, error) {
	if handler == nil {
		return HandlerMeta{}, errors.New("핸들러가 nil입니다")
	}

	fn := reflect.ValueOf(handler)
	if fn.Kind() != reflect.Func {
		return HandlerMeta{}, fmt.Errorf("핸들러는 메서드 표현식이어야 합니다: %T", handler)
	}
	if fn.Type().NumIn() == 0 {
		return HandlerMeta{}, errors.New("핸들러에 receiver가 없습니다")
	}

	controllerType := fn.Type().In(0)

	// (*T).Method 의 런타임 이름은 "pkg.(*T).Method" 입니다.
	fullName := runtime.FuncForPC(fn.Pointer()).Name()
	methodName := strings.TrimSuffix(fullName[strings.LastIndex(fullName, ".")+1:], "-fm")

	method, ok := controllerType.MethodByName(methodName)
	if !ok {
		return HandlerMeta{}, fmt.Errorf("%v 에서 메서드 %s 를 찾을 수 없습니다", controllerType, methodName)
	}

	if len(params) > method.Type.NumIn()-1 {
		return HandlerMeta{}, fmt.Errorf(
			"선언된 파라미터 수(%d)가 메서드 파라미터 수(%d)보다 많습니다: %s",
			len(params),
			method.Type.NumIn()-1,
			methodName,
		)
	}

	return HandlerMeta{
		ControllerType: controllerType,
		Method:         method,
		Params:         params,
	}, nil
}

// NumParams는 receiver를 제외한 파라미터 수입니다.
func (m HandlerMeta) NumParams() int {
	if m.Method.Type == nil {
		return 0
	}
	return m.Method.Type.NumIn() - 1
}

// ParamType은 receiver를 제외한 index 번째 파라미터 타입입니다.
func (m HandlerMeta) ParamType(index int) reflect.Type {
	return m.Method.Type.In(index + 1)
}

// DeclaredParam은 등록 시 선언된 파라미터 정보를 돌려줍니다.
func (m HandlerMeta) DeclaredParam(index int) (Param, bool) {
	if index < 0 || index >= len(m.Params) {
		return Param{}, false
	}
	return m.Params[index], true
}

func (m HandlerMeta) String() string {
	if m.ControllerType == nil {
		return m.Method.Name
	}
	return m.ControllerType.String() + "." + m.Method.Name
}
