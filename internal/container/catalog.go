package container

import (
	"errors"
	"fmt"
	"sync"

	"github.com/NARUBROWN/spindle/core"
)

// Component는 카탈로그에 등록되는 이름 붙은 생성자입니다.
type Component struct {
	Name        string
	Constructor any
}

// Catalog는 네임스페이스별 컴포넌트 등록표입니다.
// 패키지 스캔 대신 애플리케이션이 명시적으로 채웁니다.
// 등록 순서가 곧 탐색 순서입니다.
type Catalog struct {
	mu         sync.RWMutex
	namespaces map[string][]Component
}

func NewCatalog() *Catalog {
	return &Catalog{
		namespaces: make(map[string][]Component),
	}
}

// Register는 네임스페이스 끝에 컴포넌트를 추가합니다.
func (c *Catalog) Register(namespace string, components ...Component) error {
	if namespace == "" {
		return errors.New("네임스페이스가 비어 있습니다")
	}

	for _, component := range components {
		if component.Name == "" {
			return fmt.Errorf("네임스페이스 %q: 컴포넌트 이름이 비어 있습니다", namespace)
		}
		if _, _, err := inspectConstructor(component.Constructor); err != nil {
			return fmt.Errorf("네임스페이스 %q, 컴포넌트 %q: %w", namespace, component.Name, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing := c.namespaces[namespace]
	for _, component := range components {
		for _, registered := range existing {
			if registered.Name == component.Name {
				return fmt.Errorf("네임스페이스 %q: 컴포넌트 %q 가 이미 등록되어 있습니다", namespace, component.Name)
			}
		}
		existing = append(existing, component)
	}
	c.namespaces[namespace] = existing

	return nil
}

// Prepend는 네임스페이스 앞쪽에 컴포넌트를 끼워 넣습니다.
// 먼저 등록된 Resolver가 우선하므로 애플리케이션 Resolver를 내장 Resolver보다 앞에 둘 때 사용합니다.
func (c *Catalog) Prepend(namespace string, components ...Component) error {
	scratch := NewCatalog()
	if err := scratch.Register(namespace, components...); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, component := range components {
		for _, registered := range c.namespaces[namespace] {
			if registered.Name == component.Name {
				return fmt.Errorf("네임스페이스 %q: 컴포넌트 %q 가 이미 등록되어 있습니다", namespace, component.Name)
			}
		}
	}

	merged := make([]Component, 0, len(components)+len(c.namespaces[namespace]))
	merged = append(merged, components...)
	merged = append(merged, c.namespaces[namespace]...)
	c.namespaces[namespace] = merged

	return nil
}

// Declare는 컴포넌트 없이 네임스페이스만 만듭니다.
func (c *Catalog) Declare(namespace string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.namespaces[namespace]; !ok {
		c.namespaces[namespace] = nil
	}
}

// Discover는 네임스페이스에 등록된 컴포넌트를 등록 순서대로 돌려줍니다.
func (c *Catalog) Discover(namespace string) ([]Component, error) {
	if namespace == "" {
		return nil, &core.DiscoveryError{
			Namespace: namespace,
			Cause:     errors.New("네임스페이스가 비어 있습니다"),
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	components, ok := c.namespaces[namespace]
	if !ok {
		return nil, &core.DiscoveryError{
			Namespace: namespace,
			Cause:     errors.New("등록되지 않은 네임스페이스입니다"),
		}
	}

	out := make([]Component, len(components))
	copy(out, components)
	return out, nil
}
