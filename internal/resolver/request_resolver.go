package resolver

import (
	"reflect"

	"github.com/NARUBROWN/spindle/core"
)

// RequestResolver는 core.Request 타입의 파라미터에 현재 요청을 넘겨줍니다.
type RequestResolver struct{}

func (r *RequestResolver) Supports(parameter MethodParameter) bool {
	// 정확히 core.Request 타입만 처리
	return parameter.Type() == reflect.TypeOf((*core.Request)(nil)).Elem()
}

func (r *RequestResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	return req, nil
}
