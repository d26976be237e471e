package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/NARUBROWN/spindle/internal/pipeline"
	pkgws "github.com/NARUBROWN/spindle/pkg/ws"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Runtime은 등록된 경로의 WebSocket 연결을 받아, 메시지마다 pipeline을 실행합니다.
type Runtime struct {
	registry *Registry
	pipeline *pipeline.Pipeline
	upgrader *websocket.Upgrader
	logger   *slog.Logger

	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	connMu sync.Mutex
	conns  map[string]*websocket.Conn
}

func NewRuntime(
	registry *Registry,
	pipeline *pipeline.Pipeline,
	upgrader *websocket.Upgrader,
	logger *slog.Logger,
) *Runtime {
	if logger == nil {
		logger = slog.Default()
	}
	if upgrader == nil {
		upgrader = &websocket.Upgrader{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runtime{
		registry: registry,
		pipeline: pipeline,
		upgrader: upgrader,
		logger:   logger.With("component", "ws"),
		ctx:      ctx,
		cancel:   cancel,
		conns:    make(map[string]*websocket.Conn),
	}
}

// Mount는 각 WebSocket 경로를 GET 라우트로 등록합니다.
func (r *Runtime) Mount(e *echo.Echo) {
	for _, reg := range r.registry.Registrations() {
		reg := reg
		e.GET(reg.Path, func(c echo.Context) error {
			return r.HandleConn(c, reg)
		})
		r.logger.Info("WebSocket 경로 등록", "path", reg.Path, "handler", reg.Meta.String())
	}
}

func (r *Runtime) HandleConn(c echo.Context, reg Registration) error {
	if r.ctx.Err() != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "websocket runtime is shutting down")
	}
	if !websocket.IsWebSocketUpgrade(c.Request()) {
		return echo.NewHTTPError(http.StatusUpgradeRequired, "websocket 업그레이드 요청이 아닙니다")
	}

	conn, err := r.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade 실패 시 gorilla가 이미 에러 응답을 작성했습니다.
		r.logger.Warn("업그레이드 실패", "path", reg.Path, "error", err)
		return nil
	}

	connID := pkgws.ConnectionID{Value: uuid.NewString()}
	if !r.trackConn(connID.Value, conn) {
		_ = conn.Close()
		return nil
	}
	defer func() {
		r.untrackConn(connID.Value)
		_ = conn.Close()
		r.wg.Done()
	}()

	r.logger.Info("연결 수립", "conn", connID.Value, "path", reg.Path)

	sender := &connSender{conn: conn}
	ctx := pkgws.NewContext(r.ctx, connID, sender)
	upgrade := c.Request()
	params := pathParams(c)

	// 연결당 루프
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				r.logger.Warn("연결 비정상 종료", "conn", connID.Value, "error", err)
			} else {
				r.logger.Info("연결 종료", "conn", connID.Value)
			}
			return nil
		}

		req := &messageRequest{
			ctx:     ctx,
			path:    upgrade.URL.Path,
			headers: upgrade.Header,
			params:  params,
			queries: upgrade.URL.Query(),
			payload: payload,
		}

		if err := r.pipeline.Execute(reg.Meta, req, newMessageWriter(sender)); err != nil {
			r.logger.Error("핸들러 실패", "conn", connID.Value, "error", err)
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "handler error"),
				time.Now().Add(time.Second),
			)
			return nil
		}
	}
}

// Stop은 새 연결을 막고 열린 연결을 모두 닫습니다.
func (r *Runtime) Stop() {
	r.stopOnce.Do(func() {
		r.cancel()

		r.connMu.Lock()
		conns := make([]*websocket.Conn, 0, len(r.conns))
		for _, conn := range r.conns {
			conns = append(conns, conn)
		}
		r.connMu.Unlock()

		for _, conn := range conns {
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "server shutting down"),
				time.Now().Add(time.Second),
			)
			_ = conn.Close()
		}

		r.logger.Info("WebSocket 런타임을 중지했습니다", "closed", len(conns))
	})
}

// Wait는 모든 연결 루프가 끝날 때까지 기다립니다.
func (r *Runtime) Wait() {
	r.wg.Wait()
}

func (r *Runtime) trackConn(connID string, conn *websocket.Conn) bool {
	r.connMu.Lock()
	defer r.connMu.Unlock()

	if r.ctx.Err() != nil {
		return false
	}
	r.conns[connID] = conn
	r.wg.Add(1)
	return true
}

func (r *Runtime) untrackConn(connID string) {
	r.connMu.Lock()
	defer r.connMu.Unlock()
	delete(r.conns, connID)
}

func pathParams(c echo.Context) map[string]string {
	names := c.ParamNames()
	values := c.ParamValues()

	params := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(values) {
			params[name] = values[i]
		}
	}
	return params
}
