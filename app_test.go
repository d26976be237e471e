package spindle_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/NARUBROWN/spindle"
	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/boot"
	"github.com/NARUBROWN/spindle/pkg/httperr"
	"github.com/NARUBROWN/spindle/pkg/path"
	"github.com/NARUBROWN/spindle/pkg/query"
	"github.com/NARUBROWN/spindle/pkg/ws"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type locale string

// localeResolver는 Accept-Language 헤더를 locale로 만듭니다.
type localeResolver struct{}

func (r *localeResolver) Supports(p spindle.MethodParameter) bool {
	return p.Type() == reflect.TypeOf((*locale)(nil)).Elem()
}

func (r *localeResolver) Resolve(req core.Request, res core.ResponseWriter, name string, p spindle.MethodParameter) (any, error) {
	if v := req.Header("Accept-Language"); v != "" {
		return locale(v), nil
	}
	return locale("ko"), nil
}

type appCtrl struct{}

func (c *appCtrl) GetUser(id path.Int) int64 {
	return id.Value
}

func (c *appCtrl) Greet(name string, w core.ResponseWriter) {
	_ = w.WriteString(http.StatusOK, "hello "+name)
}

func (c *appCtrl) List(page query.Pagination, lang locale) map[string]any {
	return map[string]any{"page": page.Page, "size": page.Size, "lang": string(lang)}
}

func (c *appCtrl) Fail() error {
	return httperr.BadRequest("bad")
}

func (c *appCtrl) Echo(conn *websocket.Conn) {
	defer conn.Close()
	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(kind, payload); err != nil {
			return
		}
	}
}

func (c *appCtrl) Chat(id ws.ConnectionID, payload []byte, lang locale) string {
	return string(lang) + ":" + string(payload) + ":" + strconv.FormatBool(id.Value != "")
}

func setupApp() spindle.App {
	app := spindle.New()
	app.Constructor(func() *appCtrl { return &appCtrl{} })
	app.Resolver("locale", func() *localeResolver { return &localeResolver{} })
	app.Route("GET", "/users/:id", (*appCtrl).GetUser)
	app.Route("GET", "/greet", (*appCtrl).Greet)
	app.Route("GET", "/users", (*appCtrl).List)
	app.Route("GET", "/fail", (*appCtrl).Fail)
	app.Route("GET", "/ws/echo", (*appCtrl).Echo)
	app.WebSocket("/ws/chat", (*appCtrl).Chat)
	return app
}

func newTestHandlerFromApp(t *testing.T, app spindle.App) http.Handler {
	t.Helper()

	ready := make(chan http.Handler, 1)
	runErr := make(chan error, 1)

	app.Transport(func(h http.Handler) {
		select {
		case ready <- h:
		default:
		}
	})

	go func() {
		runErr <- app.Run(boot.Options{
			Address:                "127.0.0.1:0",
			EnableGracefulShutdown: true,
			ShutdownTimeout:        time.Second,
		})
	}()

	var h http.Handler
	select {
	case h = <-ready:
	case err := <-runErr:
		t.Fatalf("spindle 앱 실행 실패: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("spindle 앱 시작 타임아웃")
	}

	t.Cleanup(func() {
		stopped := false
		select {
		case <-runErr:
			stopped = true
		default:
		}

		if !stopped {
			if p, err := os.FindProcess(os.Getpid()); err == nil {
				_ = p.Signal(os.Interrupt)
			}

			select {
			case <-runErr:
			case <-time.After(3 * time.Second):
				t.Fatalf("spindle 앱 종료 타임아웃")
			}
		}
	})

	return h
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAppIntegration_PathParamJSON(t *testing.T) {
	handler := newTestHandlerFromApp(t, setupApp())

	rec := serve(handler, httptest.NewRequest("GET", "/users/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 7, body)
}

func TestAppIntegration_GreetWritesThroughResponseWriter(t *testing.T) {
	handler := newTestHandlerFromApp(t, setupApp())

	rec := serve(handler, httptest.NewRequest("GET", "/greet?name=Ada", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello Ada", rec.Body.String())
}

func TestAppIntegration_ApplicationResolver(t *testing.T) {
	handler := newTestHandlerFromApp(t, setupApp())

	req := httptest.NewRequest("GET", "/users?page=3&size=5", nil)
	req.Header.Set("Accept-Language", "en")
	rec := serve(handler, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["page"])
	assert.Equal(t, float64(5), body["size"])
	assert.Equal(t, "en", body["lang"])
}

func TestAppIntegration_Error(t *testing.T) {
	handler := newTestHandlerFromApp(t, setupApp())

	rec := serve(handler, httptest.NewRequest("GET", "/fail", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	assert.Equal(t, "bad", parsed["message"])
}

func TestAppIntegration_WebSocketEcho(t *testing.T) {
	handler := newTestHandlerFromApp(t, setupApp())

	server := httptest.NewServer(handler)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/echo"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))

	kind, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.Equal(t, "ping", string(payload))
}

func TestAppIntegration_WebSocketMessageHandler(t *testing.T) {
	handler := newTestHandlerFromApp(t, setupApp())

	server := httptest.NewServer(handler)
	defer server.Close()

	header := http.Header{}
	header.Set("Accept-Language", "en")
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	for _, message := range []string{"hi", "again"} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(message)))

		kind, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.TextMessage, kind)
		assert.Equal(t, "en:"+message+":true", string(payload))
	}
}
