package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"sync"
	"syscall"

	"github.com/NARUBROWN/spindle/core"
	httpEngine "github.com/NARUBROWN/spindle/internal/adapter/echo"
	"github.com/NARUBROWN/spindle/internal/container"
	"github.com/NARUBROWN/spindle/internal/event/consumer"
	"github.com/NARUBROWN/spindle/internal/event/infra/kafka"
	"github.com/NARUBROWN/spindle/internal/event/infra/rabbitmq"
	"github.com/NARUBROWN/spindle/internal/invoker"
	"github.com/NARUBROWN/spindle/internal/pipeline"
	"github.com/NARUBROWN/spindle/internal/resolver"
	"github.com/NARUBROWN/spindle/internal/ws"
	"github.com/NARUBROWN/spindle/pkg/boot"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type RouteSpec struct {
	Method  string
	Path    string
	Handler any
	Params  []core.Param
}

type ConsumerSpec struct {
	Topic   string
	Handler any
	Params  []core.Param
}

// WebSocketSpec은 연결이 아니라 메시지마다 호출되는 핸들러입니다.
type WebSocketSpec struct {
	Path    string
	Handler any
	Params  []core.Param
}

type Config struct {
	Options      boot.Options
	Constructors []any
	// 애플리케이션 Resolver. 내장 Resolver보다 먼저 검사됩니다.
	Resolvers  []container.Component
	Routes     []RouteSpec
	Consumers  []ConsumerSpec
	WebSockets []WebSocketSpec

	// Transport는 서버 시작 직전에 조립된 HTTP 핸들러를 받습니다.
	Transport func(http.Handler)
}

// Server는 조립이 끝난 HTTP 서버와 이벤트 컨슈머 런타임입니다.
type Server struct {
	opts     boot.Options
	logger   *slog.Logger
	echo     *echo.Echo
	mapping  *resolver.Mapping
	ws       *ws.Runtime
	runtimes []*consumer.Runtime
}

func Build(config Config) (*Server, error) {
	opts := config.Options.WithDefaults()
	logger := opts.Logger

	// 컨테이너 생성
	container := container.NewWithLogger(logger)

	// 프레임워크 생성자 등록
	if err := container.RegisterConstructor(func() *boot.Options { return &opts }); err != nil {
		return nil, err
	}
	if err := container.RegisterConstructor(resolver.NewUpgrader); err != nil {
		return nil, err
	}

	// 생성자 등록
	for _, constructor := range config.Constructors {
		if err := container.RegisterConstructor(constructor); err != nil {
			return nil, err
		}
	}

	mapping, err := buildMapping(config, opts, container, logger)
	if err != nil {
		return nil, err
	}

	invoker := invoker.NewInvoker(container)

	routes, err := buildRoutes(config.Routes)
	if err != nil {
		return nil, err
	}

	registry, err := buildRegistry(config.Consumers)
	if err != nil {
		return nil, err
	}

	wsRegistry, err := buildWebSocketRegistry(config.WebSockets)
	if err != nil {
		return nil, err
	}

	// 컨트롤러 인스턴스를 미리 만들어 배선 오류를 시작 시점에 드러냅니다.
	if err := container.WarmUp(controllerTypes(routes, registry, wsRegistry)); err != nil {
		return nil, err
	}

	upgrader, err := container.Resolve(reflect.TypeOf((**websocket.Upgrader)(nil)).Elem())
	if err != nil {
		return nil, err
	}

	// Echo Adapter
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	pipeline := pipeline.NewPipeline(mapping, invoker, nil, logger)
	adapter := httpEngine.NewAdapter(pipeline, logger)
	adapter.Mount(e, routes)

	// WebSocket 메시지도 같은 pipeline을 거칩니다.
	wsRuntime := ws.NewRuntime(wsRegistry, pipeline, upgrader.(*websocket.Upgrader), logger)
	wsRuntime.Mount(e)

	server := &Server{
		opts:    opts,
		logger:  logger,
		echo:    e,
		mapping: mapping,
		ws:      wsRuntime,
	}

	if len(registry.Registrations()) > 0 {
		server.runtimes = buildRuntimes(opts, registry, mapping, invoker, logger)
		if len(server.runtimes) == 0 {
			logger.Warn("이벤트 핸들러가 등록되었지만 활성화된 브로커 설정이 없습니다",
				"consumers", len(registry.Registrations()),
			)
		}
	}

	// 브로커 설정 오류는 연결 전에 드러냅니다.
	for _, rt := range server.runtimes {
		if err := rt.Validate(); err != nil {
			return nil, err
		}
	}

	return server, nil
}

func buildMapping(config Config, opts boot.Options, ctr *container.Container, logger *slog.Logger) (*resolver.Mapping, error) {
	namespace := opts.Resolver.Namespace
	catalog := container.NewCatalog()

	// *gorm.DB 생성자가 있을 때만 DBSessionResolver를 켭니다.
	withDB := ctr.Provides(reflect.TypeOf((**gorm.DB)(nil)).Elem())
	if err := resolver.Register(catalog, namespace, withDB); err != nil {
		return nil, err
	}
	if len(config.Resolvers) > 0 {
		if err := catalog.Prepend(namespace, config.Resolvers...); err != nil {
			return nil, err
		}
	}

	mapping := resolver.NewMapping(resolver.MappingConfig{
		Namespace: namespace,
		Logger:    logger,
	})
	if err := mapping.Init(catalog, ctr); err != nil {
		return nil, err
	}
	return mapping, nil
}

func buildRoutes(specs []RouteSpec) ([]httpEngine.Route, error) {
	routes := make([]httpEngine.Route, 0, len(specs))
	for _, spec := range specs {
		meta, err := core.NewHandlerMeta(spec.Handler, spec.Params...)
		if err != nil {
			return nil, fmt.Errorf("라우트 등록 실패 (%s %s): %w", spec.Method, spec.Path, err)
		}
		routes = append(routes, httpEngine.Route{
			Method: spec.Method,
			Path:   spec.Path,
			Meta:   meta,
		})
	}
	return routes, nil
}

func buildRegistry(specs []ConsumerSpec) (*consumer.Registry, error) {
	registry := consumer.NewRegistry()
	for _, spec := range specs {
		meta, err := core.NewHandlerMeta(spec.Handler, spec.Params...)
		if err != nil {
			return nil, fmt.Errorf("컨슈머 등록 실패 (%s): %w", spec.Topic, err)
		}
		if err := registry.Register(spec.Topic, meta); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func buildWebSocketRegistry(specs []WebSocketSpec) (*ws.Registry, error) {
	registry := ws.NewRegistry()
	for _, spec := range specs {
		meta, err := core.NewHandlerMeta(spec.Handler, spec.Params...)
		if err != nil {
			return nil, fmt.Errorf("WebSocket 핸들러 등록 실패 (%s): %w", spec.Path, err)
		}
		if err := registry.Register(spec.Path, meta); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func buildRuntimes(
	opts boot.Options,
	registry *consumer.Registry,
	mapping *resolver.Mapping,
	invoker *invoker.Invoker,
	logger *slog.Logger,
) []*consumer.Runtime {
	var runtimes []*consumer.Runtime

	if opts.Kafka != nil && opts.Kafka.Read != nil {
		runtimes = append(runtimes, consumer.NewRuntime(
			"kafka",
			registry,
			kafka.NewRunnerFactory(*opts.Kafka),
			mapping,
			invoker,
			logger,
		))
	}

	if opts.RabbitMQ != nil && opts.RabbitMQ.Read != nil {
		runtimes = append(runtimes, consumer.NewRuntime(
			"rabbitmq",
			registry,
			rabbitmq.NewRunnerFactory(*opts.RabbitMQ),
			mapping,
			invoker,
			logger,
		))
	}

	return runtimes
}

func controllerTypes(routes []httpEngine.Route, registry *consumer.Registry, wsRegistry *ws.Registry) []reflect.Type {
	types := make([]reflect.Type, 0, len(routes))
	for _, route := range routes {
		types = append(types, route.Meta.ControllerType)
	}
	for _, reg := range registry.Registrations() {
		types = append(types, reg.Meta.ControllerType)
	}
	for _, reg := range wsRegistry.Registrations() {
		types = append(types, reg.Meta.ControllerType)
	}
	return types
}

// Handler는 라우팅이 끝난 HTTP 핸들러입니다.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Mapping() *resolver.Mapping {
	return s.mapping
}

// Serve는 ctx가 끝나거나 서버/컨슈머가 치명적으로 실패할 때까지 실행합니다.
// ctx 종료는 정상 종료로 보고 nil을 돌려줍니다.
func (s *Server) Serve(ctx context.Context) error {
	runtimeCtx, cancelRuntimes := context.WithCancel(context.Background())
	defer cancelRuntimes()

	fatal := make(chan error, 1+len(s.runtimes))

	for _, rt := range s.runtimes {
		rt.Start(runtimeCtx)
		go func(rt *consumer.Runtime) {
			select {
			case err := <-rt.Errors():
				fatal <- err
			case <-runtimeCtx.Done():
			}
		}(rt)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.echo.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal <- err
		}
	}()
	s.logger.Info("서버 시작", "address", s.opts.Address)

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("종료 신호 수신, 서버를 종료합니다", "timeout", s.opts.ShutdownTimeout)
	case runErr = <-fatal:
		s.logger.Error("서버 실행 실패", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	// hijack된 WebSocket 연결은 echo.Shutdown이 기다리지 않으므로 먼저 닫습니다.
	s.ws.Stop()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("HTTP 서버 종료 실패: %w", err))
	}
	wg.Wait()
	s.ws.Wait()

	for _, rt := range s.runtimes {
		rt.Stop()
		rt.Wait()
	}

	s.logger.Info("서버 종료 완료")
	return runErr
}

func Run(config Config) error {
	server, err := Build(config)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if server.opts.EnableGracefulShutdown {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	if config.Transport != nil {
		config.Transport(server.Handler())
	}

	return server.Serve(ctx)
}
