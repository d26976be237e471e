package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/httperr"
)

type ErrorReturnHandler struct{}

func (h *ErrorReturnHandler) Supports(returnType reflect.Type) bool {
	errorType := reflect.TypeOf((*error)(nil)).Elem()
	return returnType.Implements(errorType)
}

func (h *ErrorReturnHandler) Handle(value any, rw core.ResponseWriter) error {
	err, ok := value.(error)
	if !ok {
		return fmt.Errorf("ErrorReturnHandler는 error 타입만 처리할 수 있습니다: %T", value)
	}

	status := http.StatusInternalServerError
	message := err.Error()

	// HTTPError면 상태 코드를 추출한다.
	var httpErr *httperr.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Status
		message = httpErr.Message
	}

	return rw.WriteJSON(status, map[string]any{
		"message": message,
	})
}
