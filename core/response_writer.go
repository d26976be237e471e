package core

import "net/http"

type ResponseWriter interface {
	SetHeader(key, value string)
	AddHeader(key, value string)

	WriteStatus(status int) error
	WriteJSON(status int, value any) error
	WriteString(status int, value string) error
	WriteBytes(status int, value []byte) error

	// IsCommitted는 응답이 이미 전송(혹은 hijack)되었는지 알려줍니다.
	IsCommitted() bool
}

// RawResponseWriter는 net/http ResponseWriter를 그대로 노출할 수 있는 ResponseWriter가 구현합니다.
type RawResponseWriter interface {
	Raw() http.ResponseWriter
}
