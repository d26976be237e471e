package spindle

import "github.com/NARUBROWN/spindle/internal/resolver"

// 애플리케이션 Resolver 구현에 필요한 타입입니다.
type (
	ArgumentResolver = resolver.ArgumentResolver
	NameRequirer     = resolver.NameRequirer
	MethodParameter  = resolver.MethodParameter
)
