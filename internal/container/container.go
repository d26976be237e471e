package container

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/NARUBROWN/spindle/core"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type Container struct {
	mu           sync.Mutex
	logger       *slog.Logger
	constructors map[reflect.Type]reflect.Value
	instances    map[reflect.Type]any
	creating     map[reflect.Type]bool
}

func New() *Container {
	return NewWithLogger(slog.Default())
}

func NewWithLogger(logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.Default()
	}
	return &Container{
		logger:       logger.With("component", "container"),
		constructors: make(map[reflect.Type]reflect.Value),
		instances:    make(map[reflect.Type]any),
		creating:     make(map[reflect.Type]bool),
	}
}

func (c *Container) RegisterConstructor(function any) error {
	val, outType, err := inspectConstructor(function)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.constructors[outType] = val

	return nil
}

// Provides는 해당 타입을 만들 수 있는 생성자가 있는지 알려줍니다.
func (c *Container) Provides(componentType reflect.Type) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.constructors[componentType]; ok {
		return true
	}
	_, ok, _ := c.assignableConstructor(componentType)
	return ok
}

func (c *Container) Resolve(componentType reflect.Type) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.resolve(componentType)
}

func (c *Container) resolve(componentType reflect.Type) (any, error) {
	if instance, ok := c.instances[componentType]; ok {
		return instance, nil
	}

	if c.creating[componentType] {
		return nil, &core.WiringError{
			Type:  componentType,
			Cause: errors.New("순환 의존성 감지"),
		}
	}

	constructor, hasConstructor := c.constructors[componentType]
	if !hasConstructor {
		// 인터페이스는 구현 타입의 생성자로 만족시킵니다.
		implType, ok, err := c.assignableConstructor(componentType)
		if err != nil {
			return nil, &core.WiringError{Type: componentType, Cause: err}
		}
		if !ok {
			return nil, &core.WiringError{
				Type:  componentType,
				Cause: errors.New("등록된 생성자가 없습니다"),
			}
		}
		instance, err := c.resolve(implType)
		if err != nil {
			return nil, err
		}
		c.instances[componentType] = instance
		return instance, nil
	}

	c.creating[componentType] = true
	defer delete(c.creating, componentType)

	numIn := constructor.Type().NumIn()
	args := make([]reflect.Value, numIn)
	for i := 0; i < numIn; i++ {
		paramType := constructor.Type().In(i)
		paramInstance, err := c.resolve(paramType)
		if err != nil {
			var wiringErr *core.WiringError
			if errors.As(err, &wiringErr) && wiringErr.Type != componentType {
				return nil, &core.WiringError{
					Type:  componentType,
					Cause: err,
				}
			}
			return nil, err
		}
		args[i] = valueOf(paramInstance, paramType)
	}

	outputs := constructor.Call(args)
	if len(outputs) == 2 && !outputs[1].IsNil() {
		return nil, &core.WiringError{
			Type:  componentType,
			Cause: fmt.Errorf("생성자 실행 실패: %w", outputs[1].Interface().(error)),
		}
	}

	result := outputs[0].Interface()
	c.instances[componentType] = result

	c.logger.Debug("컴포넌트 생성", "type", componentType.String())

	return result, nil
}

func (c *Container) assignableConstructor(iface reflect.Type) (reflect.Type, bool, error) {
	if iface.Kind() != reflect.Interface {
		return nil, false, nil
	}

	var found []reflect.Type
	for t := range c.constructors {
		if t.Implements(iface) {
			found = append(found, t)
		}
	}

	switch len(found) {
	case 0:
		return nil, false, nil
	case 1:
		return found[0], true, nil
	default:
		return nil, false, fmt.Errorf("구현 생성자가 여러 개입니다: %v", found)
	}
}

func (c *Container) WarmUp(types []reflect.Type) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[reflect.Type]struct{})

	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		c.logger.Info("의존성 후보 등록", "type", t.String())

		// 차례대로 후보 컴포넌트의 Resolve 호출하여 instance화
		if _, err := c.resolve(t); err != nil {
			return err
		}
	}
	return nil
}

// Instances는 Build가 만든 컴포넌트 인스턴스입니다. 순서는 Build에 넘긴 components 순서입니다.
type Instances []any

// Build는 컴포넌트를 주어진 순서대로 등록하고 각각 한 번씩 생성합니다.
// 의존성으로만 생성된 인스턴스는 결과에 포함되지 않습니다.
func (c *Container) Build(components []Component) (Instances, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	types := make([]reflect.Type, 0, len(components))
	for _, component := range components {
		val, outType, err := inspectConstructor(component.Constructor)
		if err != nil {
			return nil, &core.WiringError{
				Type:  outType,
				Cause: fmt.Errorf("컴포넌트 %q: %w", component.Name, err),
			}
		}
		if _, exists := c.constructors[outType]; exists {
			if _, built := c.instances[outType]; built {
				return nil, &core.WiringError{
					Type:  outType,
					Cause: fmt.Errorf("컴포넌트 %q 가 이미 생성된 타입을 다시 등록합니다", component.Name),
				}
			}
		}
		c.constructors[outType] = val
		types = append(types, outType)
	}

	built := make(Instances, 0, len(types))
	for i, t := range types {
		instance, err := c.resolve(t)
		if err != nil {
			return nil, err
		}
		built = append(built, instance)
		c.logger.Info("컴포넌트 준비 완료", "name", components[i].Name, "type", t.String())
	}
	return built, nil
}

// Filter는 조건을 만족하는 인스턴스를 순서 그대로 돌려줍니다.
func (i Instances) Filter(predicate func(any) bool) []any {
	var out []any
	for _, instance := range i {
		if predicate(instance) {
			out = append(out, instance)
		}
	}
	return out
}

// FilterAs는 T를 구현하는 인스턴스를 순서 그대로 돌려줍니다.
func FilterAs[T any](instances Instances) []T {
	out := make([]T, 0, len(instances))
	for _, instance := range instances {
		if typed, ok := instance.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func inspectConstructor(function any) (reflect.Value, reflect.Type, error) {
	if function == nil {
		return reflect.Value{}, nil, errors.New("생성자가 nil입니다")
	}

	val := reflect.ValueOf(function)
	typ := val.Type()

	if typ.Kind() != reflect.Func {
		return reflect.Value{}, nil, errors.New("생성자는 함수여야 합니다")
	}

	switch {
	case typ.NumOut() == 1:
	case typ.NumOut() == 2 && typ.Out(1) == errorType:
	default:
		return reflect.Value{}, nil, errors.New("생성자는 하나의 반환값(또는 값, error)만 가져야 합니다")
	}

	if typ.IsVariadic() {
		return reflect.Value{}, nil, errors.New("가변 인자 생성자는 지원하지 않습니다")
	}

	return val, typ.Out(0), nil
}

func valueOf(instance any, target reflect.Type) reflect.Value {
	if instance == nil {
		return reflect.Zero(target)
	}
	return reflect.ValueOf(instance)
}
