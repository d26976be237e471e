package ws

import (
	"fmt"
	"sync"

	"github.com/NARUBROWN/spindle/core"
)

type Registration struct {
	Path string
	Meta core.HandlerMeta
}

// Registry는 WebSocket 경로별 메시지 핸들러를 등록 순서대로 보관합니다.
type Registry struct {
	mu            sync.RWMutex
	registrations []Registration
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(path string, meta core.HandlerMeta) error {
	if path == "" {
		return fmt.Errorf("ws: path가 비어 있습니다 (%s)", meta.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reg := range r.registrations {
		if reg.Path == path {
			return fmt.Errorf("ws: 경로 '%s'에 이미 핸들러가 등록되어 있습니다 (%s)", path, reg.Meta.String())
		}
	}

	r.registrations = append(r.registrations, Registration{Path: path, Meta: meta})
	return nil
}

func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Registration, len(r.registrations))
	copy(out, r.registrations)
	return out
}
