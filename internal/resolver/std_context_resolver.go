package resolver

import (
	"context"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
)

type StdContextResolver struct{}

func (r *StdContextResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((*context.Context)(nil)).Elem()
}

func (r *StdContextResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	return req.Context(), nil
}
