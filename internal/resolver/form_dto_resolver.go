package resolver

import (
	"fmt"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/httperr"
)

type FormDTOResolver struct{}

func (r *FormDTOResolver) Supports(parameter MethodParameter) bool {
	t := parameter.Type()
	if t.Kind() != reflect.Pointer {
		return false
	}

	elem := t.Elem()
	return elem.Kind() == reflect.Struct && hasFieldTag(elem, "form")
}

func (r *FormDTOResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	dto := reflect.New(parameter.Type().Elem()).Interface()

	// Form 바인딩은 Request 구현체(echo)에 위임
	if err := req.Bind(dto); err != nil {
		return nil, httperr.New(
			400,
			fmt.Sprintf("Form 바인딩 실패 (%s)", parameter.Type().Elem().Name()),
			err,
		)
	}

	return dto, nil
}
