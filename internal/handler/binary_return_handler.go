package handler

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
)

type BinaryReturnHandler struct{}

func (h *BinaryReturnHandler) Supports(returnType reflect.Type) bool {
	return returnType == reflect.TypeOf((*[]byte)(nil)).Elem()
}

func (h *BinaryReturnHandler) Handle(value any, rw core.ResponseWriter) error {
	data, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("BinaryReturnHandler는 []byte 타입만 처리할 수 있습니다: %T", value)
	}

	rw.SetHeader("Content-Type", "application/octet-stream")
	return rw.WriteBytes(http.StatusOK, data)
}
