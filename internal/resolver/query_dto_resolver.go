package resolver

import (
	"fmt"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/httperr"
)

type QueryDTOResolver struct{}

func (r *QueryDTOResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type().Kind() == reflect.Struct && hasFieldTag(parameter.Type(), "query")
}

func (r *QueryDTOResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	dtoType := parameter.Type()
	dto := reflect.New(dtoType).Elem()

	for i := 0; i < dtoType.NumField(); i++ {
		field := dtoType.Field(i)
		tag := field.Tag.Get("query")

		if tag == "" || !field.IsExported() {
			continue
		}

		raw := req.Query(tag)
		if raw == "" {
			continue
		}

		value, err := convertScalar(raw, field.Type)
		if err != nil {
			return nil, httperr.New(
				400,
				fmt.Sprintf("QueryDTO 바인딩 실패 (%s.%s)", dtoType.Name(), field.Name),
				err,
			)
		}
		dto.Field(i).Set(reflect.ValueOf(value))
	}

	return dto.Interface(), nil
}

func hasFieldTag(t reflect.Type, key string) bool {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get(key) != "" {
			return true
		}
	}
	return false
}
