package consumer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/NARUBROWN/spindle/core"
)

// MethodEvent는 이벤트 요청의 Method 값입니다.
const MethodEvent = "EVENT"

// messageRequest는 이벤트 메시지를 core.Request로 노출합니다.
// 토픽이 Path, 메시지 헤더가 Header, payload가 Body가 됩니다.
type messageRequest struct {
	ctx     context.Context
	msg     Message
	headers http.Header
}

func NewRequest(ctx context.Context, msg Message) core.Request {
	headers := make(http.Header, len(msg.Headers))
	for k, v := range msg.Headers {
		headers.Set(k, v)
	}
	return &messageRequest{ctx: ctx, msg: msg, headers: headers}
}

func (r *messageRequest) Context() context.Context {
	return r.ctx
}

func (r *messageRequest) Method() string {
	return MethodEvent
}

func (r *messageRequest) Path() string {
	return r.msg.EventName
}

func (r *messageRequest) Header(name string) string {
	return r.headers.Get(name)
}

func (r *messageRequest) Param(name string) string {
	return ""
}

func (r *messageRequest) Query(name string) string {
	return ""
}

func (r *messageRequest) Headers() http.Header {
	return r.headers
}

func (r *messageRequest) Params() map[string]string {
	return map[string]string{}
}

func (r *messageRequest) Queries() map[string][]string {
	return map[string][]string{}
}

func (r *messageRequest) Bind(out any) error {
	if len(r.msg.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.msg.Payload, out); err != nil {
		return fmt.Errorf("이벤트 payload 디코딩 실패 (%s): %w", r.msg.EventName, err)
	}
	return nil
}

func (r *messageRequest) Body() io.Reader {
	return bytes.NewReader(r.msg.Payload)
}

func (r *messageRequest) MultipartForm() (*multipart.Form, error) {
	return nil, http.ErrNotMultipart
}

// discardWriter는 이벤트 핸들러용 ResponseWriter입니다. 기록된 응답은 버려집니다.
type discardWriter struct {
	committed bool
}

func (w *discardWriter) SetHeader(key, value string) {}
func (w *discardWriter) AddHeader(key, value string) {}
func (w *discardWriter) IsCommitted() bool           { return w.committed }

func (w *discardWriter) WriteStatus(status int) error {
	w.committed = true
	return nil
}

func (w *discardWriter) WriteJSON(status int, value any) error {
	w.committed = true
	return nil
}

func (w *discardWriter) WriteString(status int, value string) error {
	w.committed = true
	return nil
}

func (w *discardWriter) WriteBytes(status int, value []byte) error {
	w.committed = true
	return nil
}
