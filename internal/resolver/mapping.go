package resolver

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/internal/container"
)

type MappingConfig struct {
	// Resolver를 찾을 카탈로그 네임스페이스. 비어 있으면 Namespace를 사용합니다.
	Namespace string
	Names     NameDiscoverer
	Logger    *slog.Logger
}

// Mapping은 탐색된 Resolver 목록을 들고, 핸들러 호출에 필요한 인자 배열을 만듭니다.
// Init 이후에는 상태가 바뀌지 않으므로 Resolve는 동시에 호출해도 안전합니다.
type Mapping struct {
	namespace string
	names     NameDiscoverer
	logger    *slog.Logger

	once      sync.Once
	initErr   error
	ready     atomic.Bool
	resolvers []ArgumentResolver
}

func NewMapping(config MappingConfig) *Mapping {
	if config.Namespace == "" {
		config.Namespace = Namespace
	}
	if config.Names == nil {
		config.Names = DefaultNameDiscoverer
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Mapping{
		namespace: config.Namespace,
		names:     config.Names,
		logger:    config.Logger.With("component", "argument-resolver"),
	}
}

// Init은 카탈로그에서 Resolver를 찾아 컨테이너로 생성하고, 카탈로그 등록 순서대로 보관합니다.
// 한 번만 실행되며, 이후 호출은 첫 실행 결과를 그대로 돌려줍니다.
func (m *Mapping) Init(catalog *container.Catalog, ctr *container.Container) error {
	m.once.Do(func() {
		components, err := catalog.Discover(m.namespace)
		if err != nil {
			m.initErr = &core.InitializationError{Cause: err}
			return
		}

		built, err := ctr.Build(components)
		if err != nil {
			m.initErr = &core.InitializationError{Cause: err}
			return
		}

		// 우선순위는 카탈로그 순서 그대로입니다. 의존성으로 먼저 생성된 것이나
		// 네임스페이스 밖에서 생성된 Resolver는 순서에 영향을 주지 않습니다.
		m.resolvers = container.FilterAs[ArgumentResolver](built)
		if skipped := len(built) - len(m.resolvers); skipped > 0 {
			m.logger.Warn("ArgumentResolver가 아닌 컴포넌트를 건너뜁니다", "count", skipped)
		}

		for i, r := range m.resolvers {
			m.logger.Info("ArgumentResolver 등록", "order", i, "resolver", fmt.Sprintf("%T", r))
		}
		m.ready.Store(true)
	})

	return m.initErr
}

// Resolvers는 우선순위 순서의 Resolver 목록 복사본입니다.
func (m *Mapping) Resolvers() []ArgumentResolver {
	if !m.ready.Load() {
		return nil
	}
	out := make([]ArgumentResolver, len(m.resolvers))
	copy(out, m.resolvers)
	return out
}

// Resolve는 핸들러의 모든 파라미터를 해석해 위치 순서대로 돌려줍니다.
// 하나라도 실패하면 부분 결과 없이 에러만 돌려줍니다.
func (m *Mapping) Resolve(meta core.HandlerMeta, req core.Request, res core.ResponseWriter) ([]any, error) {
	if !m.ready.Load() {
		return nil, core.ErrNotInitialized
	}

	count := meta.NumParams()

	// 이름 탐색은 메서드 단위로 한 번만 합니다. 개수가 맞지 않으면 이름 없이 진행합니다.
	names := m.names.ParameterNames(meta)
	if names != nil && len(names) != count {
		m.logger.Warn("파라미터 이름 수가 맞지 않아 이름 없이 진행합니다",
			"handler", meta.String(),
			"expected", count,
			"actual", len(names),
		)
		names = nil
	}

	values := make([]any, count)

	for idx := 0; idx < count; idx++ {
		parameter, err := parameterOf(meta, idx, names)
		if err != nil {
			return nil, err
		}

		found, err := m.findResolver(parameter)
		if err != nil {
			return nil, err
		}

		if requirer, ok := found.(NameRequirer); ok && requirer.RequiresName(parameter) && !parameter.HasName() {
			return nil, m.resolutionError(parameter, found, core.ErrParameterNameUnavailable)
		}

		value, err := found.Resolve(req, res, parameter.Name(), parameter)
		if err != nil {
			return nil, m.resolutionError(parameter, found, err)
		}

		values[idx] = value
	}

	return values, nil
}

func (m *Mapping) findResolver(parameter MethodParameter) (ArgumentResolver, error) {
	for _, r := range m.resolvers {
		if r.Supports(parameter) {
			return r, nil
		}
	}

	return nil, &core.NoSuchResolverError{
		Handler: parameter.Handler().String(),
		Index:   parameter.Index(),
		Type:    parameter.Type(),
	}
}

func (m *Mapping) resolutionError(parameter MethodParameter, r ArgumentResolver, cause error) error {
	return &core.ArgumentResolutionError{
		Handler:  parameter.Handler().String(),
		Index:    parameter.Index(),
		Type:     parameter.Type(),
		Name:     parameter.Name(),
		Resolver: fmt.Sprintf("%T", r),
		Cause:    cause,
	}
}
