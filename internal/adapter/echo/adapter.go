package echo

import (
	"log/slog"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/internal/pipeline"
	"github.com/labstack/echo/v4"
)

// Route는 HTTP 메서드/경로와 컨트롤러 메서드의 연결입니다.
// Path는 echo 문법(:id, *)을 그대로 사용합니다.
type Route struct {
	Method string
	Path   string
	Meta   core.HandlerMeta
}

// Adapter는 Echo 요청을 Spindle 실행 모델로 연결합니다.
type Adapter struct {
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

func NewAdapter(pipeline *pipeline.Pipeline, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		pipeline: pipeline,
		logger:   logger.With("component", "http"),
	}
}

// Mount는 Echo 인스턴스에 라우트별 핸들러를 연결합니다.
// 라우팅은 echo가 하고, 매칭된 요청만 pipeline으로 넘어옵니다.
func (a *Adapter) Mount(e *echo.Echo, routes []Route) {
	for _, route := range routes {
		e.Add(route.Method, route.Path, a.Handler(route.Meta))
		a.logger.Info("라우트 등록", "method", route.Method, "path", route.Path, "handler", route.Meta.String())
	}
}

func (a *Adapter) Handler(meta core.HandlerMeta) echo.HandlerFunc {
	return func(c echo.Context) error {
		return a.pipeline.Execute(meta, NewRequest(c), NewEchoResponseWriter(c))
	}
}
