package consumer

import (
	"fmt"
	"sync"

	"github.com/NARUBROWN/spindle/core"
)

type Registration struct {
	Topic string
	Meta  core.HandlerMeta
}

// Registry는 토픽별 이벤트 핸들러를 등록 순서대로 보관합니다.
type Registry struct {
	mu            sync.RWMutex
	registrations []Registration
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(topic string, meta core.HandlerMeta) error {
	if topic == "" {
		return fmt.Errorf("consumer: 토픽이 비어 있습니다 (%s)", meta.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reg := range r.registrations {
		if reg.Topic == topic {
			return fmt.Errorf("consumer: 토픽 '%s'에 이미 핸들러가 등록되어 있습니다 (%s)", topic, reg.Meta.String())
		}
	}

	r.registrations = append(r.registrations, Registration{Topic: topic, Meta: meta})
	return nil
}

func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Registration, len(r.registrations))
	copy(out, r.registrations)
	return out
}
