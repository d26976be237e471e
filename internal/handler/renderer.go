package handler

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
)

type Renderer struct {
	handlers []ReturnValueHandler
}

func NewRenderer(handlers ...ReturnValueHandler) *Renderer {
	if len(handlers) == 0 {
		handlers = Defaults()
	}
	return &Renderer{handlers: handlers}
}

// Render는 컨트롤러 반환값을 응답으로 기록합니다.
// non-nil error가 있으면 그것만 기록하고, 없으면 첫 번째 non-nil 값을 기록합니다.
// 아무 값도 없으면 204를 씁니다. 이미 커밋된 응답(예: websocket hijack)은 건드리지 않습니다.
func (r *Renderer) Render(results []any, rw core.ResponseWriter) error {
	if rw.IsCommitted() {
		return nil
	}

	for _, result := range results {
		if err, ok := result.(error); ok && err != nil {
			return r.handle(err, rw)
		}
	}

	for _, result := range results {
		if isNil(result) {
			continue
		}
		return r.handle(result, rw)
	}

	return rw.WriteStatus(http.StatusNoContent)
}

func (r *Renderer) handle(value any, rw core.ResponseWriter) error {
	rt := reflect.TypeOf(value)
	for _, h := range r.handlers {
		if h.Supports(rt) {
			return h.Handle(value, rw)
		}
	}
	return fmt.Errorf("반환값을 처리할 ReturnValueHandler가 없습니다: %v", rt)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
