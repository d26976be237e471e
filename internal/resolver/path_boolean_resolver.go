package resolver

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/httperr"
	"github.com/NARUBROWN/spindle/pkg/path"
)

type PathBooleanResolver struct{}

func (r *PathBooleanResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((*path.Boolean)(nil)).Elem()
}

func (r *PathBooleanResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	key, raw, err := pathValue(req, parameter)
	if err != nil {
		return nil, err
	}

	value, err := parseBool(raw)
	if err != nil {
		return nil, httperr.New(
			400,
			fmt.Sprintf("유효하지 않은 Path param입니다. %s: %s", key, raw),
			err,
		)
	}

	return path.Boolean{Value: value}, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y", "on":
		return true, nil
	case "false", "0", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %s", s)
	}
}
