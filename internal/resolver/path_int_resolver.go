package resolver

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/httperr"
	"github.com/NARUBROWN/spindle/pkg/path"
)

type PathIntResolver struct{}

func (r *PathIntResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((*path.Int)(nil)).Elem()
}

func (r *PathIntResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	key, raw, err := pathValue(req, parameter)
	if err != nil {
		return nil, err
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, httperr.New(
			400,
			fmt.Sprintf("유효하지 않은 Path param %s: %s", key, raw),
			err,
		)
	}

	return path.Int{Value: value}, nil
}
