package resolver

import (
	"fmt"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/httperr"
	"github.com/NARUBROWN/spindle/pkg/path"
)

type PathStringResolver struct{}

func (r *PathStringResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((*path.String)(nil)).Elem()
}

func (r *PathStringResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	_, raw, err := pathValue(req, parameter)
	if err != nil {
		return nil, err
	}
	return path.String{Value: raw}, nil
}

// pathValue는 path 태그, 파라미터 이름 순서로 키를 정하고,
// 키로 찾지 못했을 때 path 파라미터가 하나뿐이면 그 값을 사용합니다.
func pathValue(req core.Request, parameter MethodParameter) (string, string, error) {
	key := parameter.Key("path")
	params := req.Params()

	if key != "" {
		if raw, ok := params[key]; ok {
			return key, raw, nil
		}
	}

	if len(params) == 1 {
		for k, v := range params {
			return k, v, nil
		}
	}

	return key, "", httperr.BadRequest(fmt.Sprintf("path param을 찾을 수 없습니다. %s", key))
}
