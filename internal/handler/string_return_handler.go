package handler

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
)

type StringReturnHandler struct{}

func (h *StringReturnHandler) Supports(returnType reflect.Type) bool {
	return returnType.Kind() == reflect.String
}

func (h *StringReturnHandler) Handle(value any, rw core.ResponseWriter) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.String {
		return fmt.Errorf("StringReturnHandler는 string 타입만 처리할 수 있습니다: %T", value)
	}

	return rw.WriteString(http.StatusOK, rv.String())
}
