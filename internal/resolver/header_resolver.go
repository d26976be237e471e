package resolver

import (
	"reflect"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/header"
)

type HeaderResolver struct{}

func (hr *HeaderResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((*header.Values)(nil)).Elem()
}

func (hr *HeaderResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	return header.NewValues(req.Headers()), nil
}
