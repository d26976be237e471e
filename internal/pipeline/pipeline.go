package pipeline

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/internal/handler"
	"github.com/NARUBROWN/spindle/internal/invoker"
	"github.com/NARUBROWN/spindle/internal/resolver"
	"github.com/NARUBROWN/spindle/pkg/httperr"
)

// Pipeline은 하나의 요청 실행 전체를 소유합니다.
// 인자 해석 → 컨트롤러 호출 → 반환값 기록 순서로 진행합니다.
type Pipeline struct {
	mapping  *resolver.Mapping
	invoker  *invoker.Invoker
	renderer *handler.Renderer
	logger   *slog.Logger
}

func NewPipeline(
	mapping *resolver.Mapping,
	invoker *invoker.Invoker,
	renderer *handler.Renderer,
	logger *slog.Logger,
) *Pipeline {
	if renderer == nil {
		renderer = handler.NewRenderer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		mapping:  mapping,
		invoker:  invoker,
		renderer: renderer,
		logger:   logger.With("component", "pipeline"),
	}
}

// Execute는 실패도 응답으로 기록합니다. 돌려주는 에러는 응답 기록 자체가 실패한 경우뿐입니다.
func (p *Pipeline) Execute(meta core.HandlerMeta, req core.Request, rw core.ResponseWriter) error {
	// Argument Resolver 체인 실행
	args, err := p.mapping.Resolve(meta, req, rw)
	if err != nil {
		p.logger.Warn("인자 해석 실패", "handler", meta.String(), "error", err)
		return p.renderer.Render([]any{ToHTTPError(err)}, rw)
	}

	// Controller Method 호출
	results, err := p.invoker.Invoke(meta, args)
	if err != nil {
		p.logger.Error("핸들러 호출 실패", "handler", meta.String(), "error", err)
		return p.renderer.Render([]any{httperr.New(http.StatusInternalServerError, err.Error(), err)}, rw)
	}

	// ReturnValueHandler 처리
	if err := p.renderer.Render(results, rw); err != nil {
		p.logger.Error("응답 기록 실패", "handler", meta.String(), "error", err)
		return err
	}
	return nil
}

// ToHTTPError는 인자 해석 에러를 HTTP 상태로 옮깁니다.
// Resolver가 HTTPError를 냈다면 그 상태를, 아니면 400을 씁니다.
// Resolver가 없거나 초기화되지 않은 경우는 서버 설정 문제이므로 500입니다.
func ToHTTPError(err error) *httperr.HTTPError {
	var httpErr *httperr.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var resolutionErr *core.ArgumentResolutionError
	if errors.As(err, &resolutionErr) {
		return &httperr.HTTPError{
			Status:  http.StatusBadRequest,
			Message: resolutionErr.Cause.Error(),
			Cause:   err,
		}
	}

	return &httperr.HTTPError{
		Status:  http.StatusInternalServerError,
		Message: err.Error(),
		Cause:   err,
	}
}
