package spindle

import (
	"net/http"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/internal/bootstrap"
	"github.com/NARUBROWN/spindle/internal/container"
	"github.com/NARUBROWN/spindle/pkg/boot"
)

type App interface {
	// 생성자 선언
	Constructor(constructors ...any)
	// ArgumentResolver 선언. 먼저 선언한 것이 내장 Resolver보다 우선합니다.
	Resolver(name string, constructor any)
	// 라우트 선언. params로 파라미터 이름과 태그를 직접 지정할 수 있습니다.
	Route(method string, path string, handler any, params ...core.Param)
	// 이벤트 핸들러 선언
	Consumer(topic string, handler any, params ...core.Param)
	// WebSocket 메시지 핸들러 선언. 연결마다가 아니라 메시지마다 호출됩니다.
	WebSocket(path string, handler any, params ...core.Param)
	// 조립된 HTTP 핸들러를 전달받을 hook
	Transport(hook func(http.Handler))
	// 실행
	Run(opts boot.Options) error
}

type app struct {
	constructors []any
	resolvers    []container.Component
	routes       []bootstrap.RouteSpec
	consumers    []bootstrap.ConsumerSpec
	websockets   []bootstrap.WebSocketSpec
	transport    func(http.Handler)
}

func New() App {
	return &app{}
}

func (a *app) Constructor(constructors ...any) {
	a.constructors = append(a.constructors, constructors...)
}

func (a *app) Resolver(name string, constructor any) {
	a.resolvers = append(a.resolvers, container.Component{
		Name:        name,
		Constructor: constructor,
	})
}

func (a *app) Route(method string, path string, handler any, params ...core.Param) {
	a.routes = append(a.routes, bootstrap.RouteSpec{
		Method:  method,
		Path:    path,
		Handler: handler,
		Params:  params,
	})
}

func (a *app) Consumer(topic string, handler any, params ...core.Param) {
	a.consumers = append(a.consumers, bootstrap.ConsumerSpec{
		Topic:   topic,
		Handler: handler,
		Params:  params,
	})
}

func (a *app) WebSocket(path string, handler any, params ...core.Param) {
	a.websockets = append(a.websockets, bootstrap.WebSocketSpec{
		Path:    path,
		Handler: handler,
		Params:  params,
	})
}

func (a *app) Transport(hook func(http.Handler)) {
	a.transport = hook
}

func (a *app) Run(opts boot.Options) error {
	internalConfig := bootstrap.Config{
		Options:      opts,
		Constructors: a.constructors,
		Resolvers:    a.resolvers,
		Routes:       a.routes,
		Consumers:    a.consumers,
		WebSockets:   a.websockets,
		Transport:    a.transport,
	}

	return bootstrap.Run(internalConfig)
}
