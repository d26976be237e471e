package resolver

import (
	"errors"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/ws"
)

// ConnectionIDResolver는 WebSocket 메시지를 보낸 연결의 ID를 넘겨줍니다.
type ConnectionIDResolver struct{}

func (r *ConnectionIDResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((*ws.ConnectionID)(nil)).Elem()
}

func (r *ConnectionIDResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	id, ok := ws.ConnectionIDFrom(req.Context())
	if !ok {
		return nil, errors.New("WebSocket 메시지 요청이 아닙니다")
	}
	return id, nil
}
