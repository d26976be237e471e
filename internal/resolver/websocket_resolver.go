package resolver

import (
	"errors"
	"net/http"
	"reflect"
	"slices"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/boot"
	"github.com/NARUBROWN/spindle/pkg/httperr"
	"github.com/gorilla/websocket"
)

// NewUpgrader는 설정으로 websocket.Upgrader를 만듭니다.
// AllowedOrigins가 비어 있으면 모든 Origin을 허용합니다.
func NewUpgrader(opts *boot.Options) *websocket.Upgrader {
	origins := opts.WebSocket.AllowedOrigins

	return &websocket.Upgrader{
		ReadBufferSize:  opts.WebSocket.ReadBufferSize,
		WriteBufferSize: opts.WebSocket.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			if len(origins) == 0 {
				return true
			}
			return slices.Contains(origins, r.Header.Get("Origin"))
		},
	}
}

// WebSocketResolver는 *websocket.Conn 파라미터를 위해 현재 HTTP 요청을 업그레이드합니다.
// 업그레이드 이후 응답은 hijack 되므로 핸들러가 연결을 직접 닫아야 합니다.
type WebSocketResolver struct {
	upgrader *websocket.Upgrader
}

func NewWebSocketResolver(upgrader *websocket.Upgrader) *WebSocketResolver {
	return &WebSocketResolver{upgrader: upgrader}
}

func (r *WebSocketResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((**websocket.Conn)(nil)).Elem()
}

func (r *WebSocketResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	rawReq, ok := req.(core.RawRequest)
	if !ok {
		return nil, errors.New("websocket 업그레이드는 HTTP 요청에서만 가능합니다")
	}
	rawRes, ok := res.(core.RawResponseWriter)
	if !ok {
		return nil, errors.New("websocket 업그레이드는 HTTP 응답에서만 가능합니다")
	}

	if !websocket.IsWebSocketUpgrade(rawReq.Raw()) {
		return nil, httperr.UpgradeRequired("websocket 업그레이드 요청이 아닙니다")
	}

	conn, err := r.upgrader.Upgrade(rawRes.Raw(), rawReq.Raw(), nil)
	if err != nil {
		// Upgrade 실패 시 gorilla가 이미 에러 응답을 작성했습니다.
		return nil, httperr.New(400, "websocket 업그레이드 실패", err)
	}
	return conn, nil
}
