package resolver

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/internal/container"
	"github.com/NARUBROWN/spindle/pkg/boot"
	"github.com/NARUBROWN/spindle/pkg/header"
	"github.com/NARUBROWN/spindle/pkg/path"
	"github.com/NARUBROWN/spindle/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNamespace = "test.resolver"

type greetController struct{}

func (c *greetController) Greet(name string, w core.ResponseWriter) {}

func (c *greetController) Compute(x int) {}

func (c *greetController) Mixed(name string, x int) {}

func (c *greetController) WriterOnly(w core.ResponseWriter) {}

func (c *greetController) NoArgs() {}

func (c *greetController) Everything(
	ctx context.Context,
	req core.Request,
	id path.Int,
	page query.Pagination,
	headers header.Values,
	body dtoSample,
	verbose bool,
) {
}

// queryStringResolver는 이름과 같은 query 값을 string 파라미터에 넣습니다.
type queryStringResolver struct{}

func (r *queryStringResolver) Supports(p MethodParameter) bool {
	return p.Type().Kind() == reflect.String
}

func (r *queryStringResolver) RequiresName(p MethodParameter) bool { return true }

func (r *queryStringResolver) Resolve(req core.Request, res core.ResponseWriter, name string, p MethodParameter) (any, error) {
	return req.Query(name), nil
}

type catchAllResolver struct{}

func (r *catchAllResolver) Supports(p MethodParameter) bool { return true }

func (r *catchAllResolver) Resolve(req core.Request, res core.ResponseWriter, name string, p MethodParameter) (any, error) {
	return "catch-all", nil
}

type failingResolver struct{ err error }

func (r *failingResolver) Supports(p MethodParameter) bool { return true }

func (r *failingResolver) Resolve(req core.Request, res core.ResponseWriter, name string, p MethodParameter) (any, error) {
	return nil, r.err
}

type notAResolver struct{}

type fixedNames []string

func (f fixedNames) ParameterNames(core.HandlerMeta) []string { return f }

type dependentResolver struct{ dep *notAResolver }

func (r *dependentResolver) Supports(p MethodParameter) bool { return false }

func (r *dependentResolver) Resolve(req core.Request, res core.ResponseWriter, name string, p MethodParameter) (any, error) {
	return nil, nil
}

type intResolver struct{}

func (r *intResolver) Supports(p MethodParameter) bool { return p.Type().Kind() == reflect.Int }

func (r *intResolver) Resolve(req core.Request, res core.ResponseWriter, name string, p MethodParameter) (any, error) {
	return "specific", nil
}

// delegatingResolver는 모든 파라미터를 받지만 생성에 intResolver가 필요합니다.
type delegatingResolver struct{ specific *intResolver }

func (r *delegatingResolver) Supports(p MethodParameter) bool { return true }

func (r *delegatingResolver) Resolve(req core.Request, res core.ResponseWriter, name string, p MethodParameter) (any, error) {
	return "catch-all", nil
}

type strayResolver struct{}

func (r *strayResolver) Supports(p MethodParameter) bool { return true }

func (r *strayResolver) Resolve(req core.Request, res core.ResponseWriter, name string, p MethodParameter) (any, error) {
	return "stray", nil
}

func handlerMeta(t *testing.T, handler any, params ...core.Param) core.HandlerMeta {
	t.Helper()
	meta, err := core.NewHandlerMeta(handler, params...)
	require.NoError(t, err)
	return meta
}

func newTestMapping(t *testing.T, names NameDiscoverer, components ...container.Component) *Mapping {
	t.Helper()

	catalog := container.NewCatalog()
	catalog.Declare(testNamespace)
	require.NoError(t, catalog.Register(testNamespace, components...))

	m := NewMapping(MappingConfig{Namespace: testNamespace, Names: names})
	require.NoError(t, m.Init(catalog, container.New()))
	return m
}

func greetComponents() []container.Component {
	return []container.Component{
		{Name: "query-string", Constructor: func() *queryStringResolver { return &queryStringResolver{} }},
		{Name: "response-writer", Constructor: func() *ResponseWriterResolver { return &ResponseWriterResolver{} }},
	}
}

func TestMapping_ResolveBeforeInitFails(t *testing.T) {
	m := NewMapping(MappingConfig{})

	values, err := m.Resolve(handlerMeta(t, (*greetController).NoArgs), newFakeRequest(), newFakeResponse())
	require.ErrorIs(t, err, core.ErrNotInitialized)
	assert.Nil(t, values)
	assert.Nil(t, m.Resolvers())
}

func TestMapping_InitRunsOnce(t *testing.T) {
	catalog := container.NewCatalog()
	calls := 0
	require.NoError(t, catalog.Register(testNamespace, container.Component{
		Name: "counted",
		Constructor: func() *catchAllResolver {
			calls++
			return &catchAllResolver{}
		},
	}))

	m := NewMapping(MappingConfig{Namespace: testNamespace})
	ctr := container.New()
	require.NoError(t, m.Init(catalog, ctr))
	require.NoError(t, m.Init(catalog, ctr))

	assert.Equal(t, 1, calls)
	assert.Len(t, m.Resolvers(), 1)
}

func TestMapping_InitDiscoveryError(t *testing.T) {
	m := NewMapping(MappingConfig{Namespace: "missing"})

	err := m.Init(container.NewCatalog(), container.New())

	var initErr *core.InitializationError
	require.ErrorAs(t, err, &initErr)
	var discoveryErr *core.DiscoveryError
	require.ErrorAs(t, err, &discoveryErr)

	_, err = m.Resolve(handlerMeta(t, (*greetController).NoArgs), newFakeRequest(), newFakeResponse())
	require.ErrorIs(t, err, core.ErrNotInitialized)
}

func TestMapping_InitWiringError(t *testing.T) {
	catalog := container.NewCatalog()
	require.NoError(t, catalog.Register(testNamespace, container.Component{
		Name:        "dependent",
		Constructor: func(dep *notAResolver) *dependentResolver { return &dependentResolver{dep: dep} },
	}))

	err := NewMapping(MappingConfig{Namespace: testNamespace}).Init(catalog, container.New())

	var wiringErr *core.WiringError
	require.ErrorAs(t, err, &wiringErr)
}

func TestMapping_InitResolvesDependenciesAndSkipsNonResolvers(t *testing.T) {
	catalog := container.NewCatalog()
	require.NoError(t, catalog.Register(testNamespace,
		container.Component{Name: "helper", Constructor: func() *notAResolver { return &notAResolver{} }},
		container.Component{Name: "dependent", Constructor: func(dep *notAResolver) *dependentResolver { return &dependentResolver{dep: dep} }},
	))

	m := NewMapping(MappingConfig{Namespace: testNamespace})
	require.NoError(t, m.Init(catalog, container.New()))

	resolvers := m.Resolvers()
	require.Len(t, resolvers, 1)
	assert.NotNil(t, resolvers[0].(*dependentResolver).dep)
}

func TestMapping_GreetScenario(t *testing.T) {
	m := newTestMapping(t, DefaultNameDiscoverer, greetComponents()...)
	meta := handlerMeta(t, (*greetController).Greet, core.Param{Name: "name"})

	req := newFakeRequest()
	req.queries["name"] = []string{"Ada"}
	res := newFakeResponse()

	values, err := m.Resolve(meta, req, res)
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, "Ada", values[0])
	assert.Same(t, res, values[1])
}

func TestMapping_GreetScenarioWithSourceNames(t *testing.T) {
	m := newTestMapping(t, NewSourceNameDiscoverer(), greetComponents()...)

	req := newFakeRequest()
	req.queries["name"] = []string{"Ada"}

	values, err := m.Resolve(handlerMeta(t, (*greetController).Greet), req, newFakeResponse())
	require.NoError(t, err)
	assert.Equal(t, "Ada", values[0])
}

func TestMapping_ComputeScenarioHasNoResolver(t *testing.T) {
	m := newTestMapping(t, DefaultNameDiscoverer, greetComponents()...)

	values, err := m.Resolve(handlerMeta(t, (*greetController).Compute), newFakeRequest(), newFakeResponse())

	var noSuch *core.NoSuchResolverError
	require.ErrorAs(t, err, &noSuch)
	assert.Equal(t, 0, noSuch.Index)
	assert.Equal(t, reflect.TypeOf((*int)(nil)).Elem(), noSuch.Type)
	assert.Nil(t, values, "부분 결과를 돌려주면 안 됩니다")
}

func TestMapping_NoPartialResultWhenLaterParameterFails(t *testing.T) {
	m := newTestMapping(t, DefaultNameDiscoverer, greetComponents()...)
	req := newFakeRequest()
	req.queries["name"] = []string{"Ada"}

	values, err := m.Resolve(handlerMeta(t, (*greetController).Mixed), req, newFakeResponse())

	var noSuch *core.NoSuchResolverError
	require.ErrorAs(t, err, &noSuch)
	assert.Equal(t, 1, noSuch.Index)
	assert.Nil(t, values)
}

func TestMapping_EarlierRegistrationWins(t *testing.T) {
	m := newTestMapping(t, DefaultNameDiscoverer,
		container.Component{Name: "catch-all", Constructor: func() *catchAllResolver { return &catchAllResolver{} }},
		container.Component{Name: "query-string", Constructor: func() *queryStringResolver { return &queryStringResolver{} }},
	)
	req := newFakeRequest()
	req.queries["name"] = []string{"Ada"}

	values, err := m.Resolve(handlerMeta(t, (*greetController).Greet), req, newFakeResponse())
	require.NoError(t, err)
	assert.Equal(t, []any{"catch-all", "catch-all"}, values)
}

func TestMapping_PrecedenceFollowsCatalogNotConstruction(t *testing.T) {
	m := newTestMapping(t, DefaultNameDiscoverer,
		container.Component{Name: "catch-all", Constructor: func(specific *intResolver) *delegatingResolver {
			return &delegatingResolver{specific: specific}
		}},
		container.Component{Name: "int", Constructor: func() *intResolver { return &intResolver{} }},
	)

	resolvers := m.Resolvers()
	require.Len(t, resolvers, 2)
	assert.IsType(t, &delegatingResolver{}, resolvers[0])
	assert.IsType(t, &intResolver{}, resolvers[1])
	assert.Same(t, resolvers[1], resolvers[0].(*delegatingResolver).specific)

	values, err := m.Resolve(handlerMeta(t, (*greetController).Compute), newFakeRequest(), newFakeResponse())
	require.NoError(t, err)
	assert.Equal(t, []any{"catch-all"}, values)
}

func TestMapping_IgnoresResolversOutsideNamespace(t *testing.T) {
	ctr := container.New()
	require.NoError(t, ctr.RegisterConstructor(func() *strayResolver { return &strayResolver{} }))
	_, err := ctr.Resolve(reflect.TypeOf(&strayResolver{}))
	require.NoError(t, err)

	catalog := container.NewCatalog()
	require.NoError(t, catalog.Register(testNamespace, container.Component{
		Name:        "int",
		Constructor: func() *intResolver { return &intResolver{} },
	}))

	m := NewMapping(MappingConfig{Namespace: testNamespace})
	require.NoError(t, m.Init(catalog, ctr))

	resolvers := m.Resolvers()
	require.Len(t, resolvers, 1)
	assert.IsType(t, &intResolver{}, resolvers[0])

	values, err := m.Resolve(handlerMeta(t, (*greetController).Compute), newFakeRequest(), newFakeResponse())
	require.NoError(t, err)
	assert.Equal(t, []any{"specific"}, values)
}

func TestMapping_ResolveIsIdempotent(t *testing.T) {
	m := newTestMapping(t, DefaultNameDiscoverer, greetComponents()...)
	meta := handlerMeta(t, (*greetController).Greet)
	req := newFakeRequest()
	req.queries["name"] = []string{"Ada"}
	res := newFakeResponse()

	first, err := m.Resolve(meta, req, res)
	require.NoError(t, err)
	second, err := m.Resolve(meta, req, res)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMapping_DegradedNameMode(t *testing.T) {
	m := newTestMapping(t, fixedNames(nil), greetComponents()...)

	values, err := m.Resolve(handlerMeta(t, (*greetController).WriterOnly), newFakeRequest(), newFakeResponse())
	require.NoError(t, err, "이름이 필요 없는 Resolver는 성공해야 합니다")
	assert.Len(t, values, 1)

	values, err = m.Resolve(handlerMeta(t, (*greetController).Greet), newFakeRequest(), newFakeResponse())
	var resolutionErr *core.ArgumentResolutionError
	require.ErrorAs(t, err, &resolutionErr)
	require.ErrorIs(t, err, core.ErrParameterNameUnavailable)
	assert.Equal(t, 0, resolutionErr.Index)
	assert.Nil(t, values)
}

func TestMapping_NameCountMismatchFallsBackToNoNames(t *testing.T) {
	m := newTestMapping(t, fixedNames{"only-one", "two", "three"}, greetComponents()...)

	_, err := m.Resolve(handlerMeta(t, (*greetController).Greet), newFakeRequest(), newFakeResponse())
	require.ErrorIs(t, err, core.ErrParameterNameUnavailable)
}

func TestMapping_WrapsResolverErrors(t *testing.T) {
	cause := errors.New("malformed payload")
	m := newTestMapping(t, DefaultNameDiscoverer, container.Component{
		Name:        "failing",
		Constructor: func() *failingResolver { return &failingResolver{err: cause} },
	})

	values, err := m.Resolve(handlerMeta(t, (*greetController).Compute), newFakeRequest(), newFakeResponse())

	var resolutionErr *core.ArgumentResolutionError
	require.ErrorAs(t, err, &resolutionErr)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "x", resolutionErr.Name)
	assert.Contains(t, resolutionErr.Resolver, "failingResolver")
	assert.Nil(t, values)
}

func TestMapping_ResultLengthMatchesParameterCount(t *testing.T) {
	m := newTestMapping(t, DefaultNameDiscoverer,
		container.Component{Name: "catch-all", Constructor: func() *catchAllResolver { return &catchAllResolver{} }},
	)

	handlers := []any{
		(*greetController).NoArgs,
		(*greetController).Compute,
		(*greetController).Greet,
		(*greetController).Everything,
	}
	for _, h := range handlers {
		meta := handlerMeta(t, h)
		values, err := m.Resolve(meta, newFakeRequest(), newFakeResponse())
		require.NoError(t, err)
		assert.Len(t, values, meta.NumParams(), meta.String())
	}
}

func TestMapping_ConcurrentResolve(t *testing.T) {
	m := newTestMapping(t, DefaultNameDiscoverer, greetComponents()...)
	meta := handlerMeta(t, (*greetController).Greet)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := newFakeRequest()
			expected := fmt.Sprintf("user-%d", i)
			req.queries["name"] = []string{expected}

			values, err := m.Resolve(meta, req, newFakeResponse())
			if err != nil {
				errs <- err
				return
			}
			if values[0] != expected {
				errs <- fmt.Errorf("기대값 %s, 실제값 %v", expected, values[0])
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestMapping_DefaultCatalog(t *testing.T) {
	catalog := container.NewCatalog()
	require.NoError(t, Register(catalog, Namespace, false))

	ctr := container.New()
	opts := boot.Options{}.WithDefaults()
	require.NoError(t, ctr.RegisterConstructor(func() *boot.Options { return &opts }))
	require.NoError(t, ctr.RegisterConstructor(NewUpgrader))

	m := NewMapping(MappingConfig{})
	require.NoError(t, m.Init(catalog, ctr))

	resolvers := m.Resolvers()
	require.Len(t, resolvers, len(Components()))
	assert.IsType(t, &RequestResolver{}, resolvers[0])
	assert.IsType(t, &NamedValueResolver{}, resolvers[len(resolvers)-1])

	req := newFakeRequest()
	req.params["id"] = "42"
	req.queries["verbose"] = []string{"true"}
	req.queries["page"] = []string{"2"}
	req.body = []byte(`{"name":"ada","age":36}`)

	values, err := m.Resolve(handlerMeta(t, (*greetController).Everything), req, newFakeResponse())
	require.NoError(t, err)
	require.Len(t, values, 7)
	assert.Equal(t, req.Context(), values[0])
	assert.Same(t, req, values[1])
	assert.Equal(t, path.Int{Value: 42}, values[2])
	assert.Equal(t, 2, values[3].(query.Pagination).Page)
	assert.IsType(t, header.Values{}, values[4])
	assert.Equal(t, dtoSample{Name: "ada", Age: 36}, values[5])
	assert.Equal(t, true, values[6])
}
