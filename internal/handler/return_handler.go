package handler

import (
	"reflect"

	"github.com/NARUBROWN/spindle/core"
)

// ReturnValueHandler는 컨트롤러 반환값 하나를 응답으로 기록합니다.
type ReturnValueHandler interface {
	Supports(returnType reflect.Type) bool
	Handle(value any, rw core.ResponseWriter) error
}

// Defaults는 기본 반환값 처리 순서입니다. 앞에 있을수록 우선합니다.
func Defaults() []ReturnValueHandler {
	return []ReturnValueHandler{
		&ErrorReturnHandler{},
		&BinaryReturnHandler{},
		&StringReturnHandler{},
		&JSONReturnHandler{},
	}
}
