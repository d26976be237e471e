package resolver

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/httperr"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

const frameworkPkgPrefix = "github.com/NARUBROWN/spindle/pkg/"

// 요청 body로 바인딩하면 안 되는 인프라 타입입니다.
var nonBindableTypes = map[reflect.Type]struct{}{
	reflect.TypeOf((*websocket.Conn)(nil)).Elem(): {},
	reflect.TypeOf((*gorm.DB)(nil)).Elem():        {},
}

// DTOResolver는 struct 또는 struct 포인터를 요청 body에서 바인딩합니다.
// query/form 태그가 있는 struct는 각각 QueryDTOResolver, FormDTOResolver가 담당합니다.
type DTOResolver struct{}

func (r *DTOResolver) Supports(parameter MethodParameter) bool {
	t := parameter.Type()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return false
	}
	if strings.HasPrefix(t.PkgPath(), frameworkPkgPrefix) {
		return false
	}
	if _, reserved := nonBindableTypes[t]; reserved {
		return false
	}

	return !hasFieldTag(t, "query") && !hasFieldTag(t, "form")
}

func (r *DTOResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	isPointer := parameter.Type().Kind() == reflect.Pointer

	dtoType := parameter.Type()
	if isPointer {
		dtoType = dtoType.Elem()
	}

	// 빈 DTO 생성
	valuePtr := reflect.New(dtoType)

	if err := req.Bind(valuePtr.Interface()); err != nil {
		return nil, httperr.New(
			400,
			fmt.Sprintf("DTO 바인딩 실패 (%s)", dtoType.Name()),
			err,
		)
	}

	if isPointer {
		return valuePtr.Interface(), nil
	}
	return valuePtr.Elem().Interface(), nil
}
