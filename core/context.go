package core

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
)

type ContextCarrier interface {
	Context() context.Context
}

// Request는 ArgumentResolver가 읽을 수 있는 요청 뷰입니다.
// HTTP 요청과 이벤트 메시지 모두 이 계약으로 노출됩니다.
type Request interface {
	ContextCarrier

	Method() string
	Path() string

	// 개별 접근
	Header(name string) string
	Param(name string) string
	Query(name string) string

	// 전체 뷰 접근
	Headers() http.Header
	Params() map[string]string
	Queries() map[string][]string

	// body
	Bind(out any) error
	Body() io.Reader

	// Multipart
	MultipartForm() (*multipart.Form, error)
}

// RawRequest는 net/http 요청을 그대로 노출할 수 있는 Request가 구현합니다.
type RawRequest interface {
	Raw() *http.Request
}
