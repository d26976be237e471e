package handler

import (
	"net/http"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
)

// JSONReturnHandler는 마지막 순서의 처리기로, 나머지 모든 값을 JSON으로 씁니다.
type JSONReturnHandler struct{}

func (h *JSONReturnHandler) Supports(returnType reflect.Type) bool {
	return true
}

func (h *JSONReturnHandler) Handle(value any, rw core.ResponseWriter) error {
	return rw.WriteJSON(http.StatusOK, value)
}
