package resolver

import (
	"reflect"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/query"
)

type QueryValuesResolver struct{}

func (r *QueryValuesResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((*query.Values)(nil)).Elem()
}

func (r *QueryValuesResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	return query.NewValues(req.Queries()), nil
}
