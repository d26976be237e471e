package core

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotInitialized는 Init 이전에 Resolve가 호출되었을 때 반환됩니다.
	ErrNotInitialized = errors.New("spindle: ArgumentResolverMapping이 초기화되지 않았습니다")

	// ErrParameterNameUnavailable은 이름이 필요한 Resolver가 이름 없이 호출되었을 때 사용됩니다.
	ErrParameterNameUnavailable = errors.New("spindle: 파라미터 이름을 알 수 없습니다")
)

// DiscoveryError는 네임스페이스의 컴포넌트를 찾을 수 없을 때 발생합니다.
type DiscoveryError struct {
	Namespace string
	Cause     error
}

func (e *DiscoveryError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("spindle: 컴포넌트 탐색 실패 (namespace=%q)", e.Namespace)
	}
	return fmt.Sprintf("spindle: 컴포넌트 탐색 실패 (namespace=%q): %v", e.Namespace, e.Cause)
}

func (e *DiscoveryError) Unwrap() error { return e.Cause }

// WiringError는 의존성을 만족시킬 수 없거나 순환이 감지되었을 때 발생합니다.
type WiringError struct {
	Type  reflect.Type
	Cause error
}

func (e *WiringError) Error() string {
	return fmt.Sprintf("spindle: 의존성 주입 실패 (%v): %v", e.Type, e.Cause)
}

func (e *WiringError) Unwrap() error { return e.Cause }

// InitializationError는 Mapping 초기화 실패를 감쌉니다.
type InitializationError struct {
	Cause error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("spindle: ArgumentResolverMapping 초기화 실패: %v", e.Cause)
}

func (e *InitializationError) Unwrap() error { return e.Cause }

// IndexOutOfRangeError는 존재하지 않는 파라미터 위치로 디스크립터를 만들려 할 때 발생합니다.
type IndexOutOfRangeError struct {
	Handler string
	Index   int
	Count   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf(
		"spindle: 파라미터 인덱스 범위 초과 (%s): index=%d, count=%d",
		e.Handler,
		e.Index,
		e.Count,
	)
}

// NoSuchResolverError는 파라미터를 처리할 Resolver가 하나도 없을 때 발생합니다.
type NoSuchResolverError struct {
	Handler string
	Index   int
	Type    reflect.Type
}

func (e *NoSuchResolverError) Error() string {
	return fmt.Sprintf(
		"spindle: ArgumentResolver가 없습니다. %s 파라미터 %d (%v)",
		e.Handler,
		e.Index,
		e.Type,
	)
}

// ArgumentResolutionError는 Resolver 고유의 실패를 감쌉니다.
type ArgumentResolutionError struct {
	Handler  string
	Index    int
	Type     reflect.Type
	Name     string
	Resolver string
	Cause    error
}

func (e *ArgumentResolutionError) Error() string {
	name := e.Name
	if name == "" {
		name = "?"
	}
	return fmt.Sprintf(
		"spindle: 인자 해석 실패 %s 파라미터 %d (%s %v, resolver=%s): %v",
		e.Handler,
		e.Index,
		name,
		e.Type,
		e.Resolver,
		e.Cause,
	)
}

func (e *ArgumentResolutionError) Unwrap() error { return e.Cause }
