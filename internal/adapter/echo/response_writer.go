package echo

import (
	"bufio"
	"errors"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
)

type EchoResponseWriter struct {
	ctx      echo.Context
	hijacked bool
}

func NewEchoResponseWriter(ctx echo.Context) *EchoResponseWriter {
	return &EchoResponseWriter{ctx: ctx}
}

func (w *EchoResponseWriter) SetHeader(key, value string) {
	w.ctx.Response().Header().Set(key, value)
}

func (w *EchoResponseWriter) AddHeader(key, value string) {
	w.ctx.Response().Header().Add(key, value)
}

func (w *EchoResponseWriter) WriteStatus(status int) error {
	return w.ctx.NoContent(status)
}

func (w *EchoResponseWriter) WriteJSON(status int, value any) error {
	return w.ctx.JSON(status, value)
}

func (w *EchoResponseWriter) WriteString(status int, value string) error {
	return w.ctx.String(status, value)
}

func (w *EchoResponseWriter) WriteBytes(status int, value []byte) error {
	contentType := w.ctx.Response().Header().Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return w.ctx.Blob(status, contentType, value)
}

func (w *EchoResponseWriter) IsCommitted() bool {
	return w.hijacked || w.ctx.Response().Committed
}

// Raw는 hijack 여부를 추적하는 http.ResponseWriter를 돌려줍니다.
func (w *EchoResponseWriter) Raw() http.ResponseWriter {
	return &hijackTracker{ResponseWriter: w.ctx.Response(), owner: w}
}

type hijackTracker struct {
	http.ResponseWriter
	owner *EchoResponseWriter
}

func (t *hijackTracker) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := t.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack을 지원하지 않는 ResponseWriter입니다")
	}
	conn, rw, err := hijacker.Hijack()
	if err == nil {
		t.owner.hijacked = true
	}
	return conn, rw, err
}

func (t *hijackTracker) Unwrap() http.ResponseWriter {
	return t.ResponseWriter
}
