package resolver

import (
	"reflect"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/boot"
	"github.com/NARUBROWN/spindle/pkg/header"
	"github.com/google/uuid"
)

// RequestIDResolver는 설정된 헤더의 요청 ID를 넘겨주고, 없으면 새 UUID를 발급합니다.
type RequestIDResolver struct {
	header string
}

func NewRequestIDResolver(opts *boot.Options) *RequestIDResolver {
	name := opts.RequestID.Header
	if name == "" {
		name = boot.DefaultRequestIDHeader
	}
	return &RequestIDResolver{header: name}
}

func (r *RequestIDResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((*header.RequestID)(nil)).Elem()
}

func (r *RequestIDResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	if id := req.Header(r.header); id != "" {
		return header.RequestID(id), nil
	}
	return header.RequestID(uuid.NewString()), nil
}
