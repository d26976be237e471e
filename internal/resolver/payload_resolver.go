package resolver

import (
	"fmt"
	"io"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
)

// PayloadResolver는 []byte 파라미터에 요청 본문을 그대로 넘겨줍니다.
// WebSocket 메시지와 이벤트에서는 메시지 payload, HTTP에서는 요청 body입니다.
type PayloadResolver struct{}

func (r *PayloadResolver) Supports(parameter MethodParameter) bool {
	t := parameter.Type()
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

func (r *PayloadResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	body := req.Body()
	if body == nil {
		return reflect.MakeSlice(parameter.Type(), 0, 0).Interface(), nil
	}

	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("payload 읽기 실패: %w", err)
	}
	return reflect.ValueOf(payload).Convert(parameter.Type()).Interface(), nil
}
