package resolver

import (
	"github.com/NARUBROWN/spindle/core"
)

// ArgumentResolver는 핸들러 파라미터 하나의 값을 만드는 전략입니다.
// Supports는 같은 파라미터에 대해 항상 같은 결과를 돌려야 하며 패닉을 일으키면 안 됩니다.
type ArgumentResolver interface {
	Supports(parameter MethodParameter) bool
	Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error)
}

// NameRequirer는 파라미터 이름 없이 동작할 수 없는 Resolver가 구현합니다.
// 이름을 알 수 없으면 Mapping이 Resolve 호출 전에 실패시킵니다.
type NameRequirer interface {
	RequiresName(parameter MethodParameter) bool
}
