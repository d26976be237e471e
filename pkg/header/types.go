package header

import "net/http"

type Values struct {
	headers http.Header
}

func NewValues(headers http.Header) Values {
	return Values{headers: headers}
}

func (h Values) Get(key string) string {
	return h.headers.Get(key)
}

func (h Values) Values(key string) []string {
	return h.headers.Values(key)
}

func (h Values) Has(key string) bool {
	return h.headers.Get(key) != ""
}

// RequestID는 요청 식별자입니다. 헤더에 없으면 새로 발급됩니다.
type RequestID string

func (id RequestID) String() string {
	return string(id)
}
