package resolver

import (
	"reflect"

	"github.com/NARUBROWN/spindle/core"
)

type ResponseWriterResolver struct{}

func (r *ResponseWriterResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((*core.ResponseWriter)(nil)).Elem()
}

func (r *ResponseWriterResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	return res, nil
}
