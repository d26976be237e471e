package invoker

import (
	"fmt"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/internal/container"
)

type Invoker struct {
	container *container.Container
}

func NewInvoker(container *container.Container) *Invoker {
	return &Invoker{
		container: container,
	}
}

// Invoke는 컨트롤러 인스턴스를 컨테이너에서 꺼내 메서드를 호출합니다.
// args는 ArgumentResolverMapping이 만든 위치 순서 인자입니다.
func (i *Invoker) Invoke(meta core.HandlerMeta, args []any) ([]any, error) {
	if len(args) != meta.NumParams() {
		return nil, fmt.Errorf(
			"인자 수가 맞지 않습니다 (%s): expected=%d, actual=%d",
			meta.String(),
			meta.NumParams(),
			len(args),
		)
	}

	// 컨트롤러 인스턴스 Resolve
	controller, err := i.container.Resolve(meta.ControllerType)
	if err != nil {
		return nil, err
	}

	values := make([]reflect.Value, len(args)+1)
	values[0] = reflect.ValueOf(controller)
	for idx, arg := range args {
		paramType := meta.ParamType(idx)
		if arg == nil {
			// nil은 파라미터 타입의 zero value로 넘깁니다.
			values[idx+1] = reflect.Zero(paramType)
			continue
		}
		value := reflect.ValueOf(arg)
		if !value.Type().AssignableTo(paramType) {
			return nil, fmt.Errorf(
				"인자 %d 타입이 맞지 않습니다 (%s): expected=%v, actual=%v",
				idx,
				meta.String(),
				paramType,
				value.Type(),
			)
		}
		values[idx+1] = value
	}

	results := meta.Method.Func.Call(values)

	out := make([]any, len(results))
	for i, result := range results {
		out[i] = result.Interface()
	}

	return out, nil
}
