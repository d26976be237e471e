package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// MethodWebSocket은 WebSocket 메시지 요청의 Method 값입니다.
const MethodWebSocket = "WS"

// messageRequest는 WebSocket 메시지 하나를 core.Request로 노출합니다.
// 헤더, path 파라미터, query는 업그레이드 요청의 값을 그대로 쓰고, 메시지가 Body가 됩니다.
type messageRequest struct {
	ctx     context.Context
	path    string
	headers http.Header
	params  map[string]string
	queries map[string][]string
	payload []byte
}

func (r *messageRequest) Context() context.Context {
	return r.ctx
}

func (r *messageRequest) Method() string {
	return MethodWebSocket
}

func (r *messageRequest) Path() string {
	return r.path
}

func (r *messageRequest) Header(name string) string {
	return r.headers.Get(name)
}

func (r *messageRequest) Param(name string) string {
	return r.params[name]
}

func (r *messageRequest) Query(name string) string {
	if values := r.queries[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func (r *messageRequest) Headers() http.Header {
	return r.headers
}

func (r *messageRequest) Params() map[string]string {
	return r.params
}

func (r *messageRequest) Queries() map[string][]string {
	return r.queries
}

func (r *messageRequest) Bind(out any) error {
	if len(r.payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.payload, out); err != nil {
		return fmt.Errorf("websocket 메시지 디코딩 실패 (%s): %w", r.path, err)
	}
	return nil
}

func (r *messageRequest) Body() io.Reader {
	return bytes.NewReader(r.payload)
}

func (r *messageRequest) MultipartForm() (*multipart.Form, error) {
	return nil, http.ErrNotMultipart
}
