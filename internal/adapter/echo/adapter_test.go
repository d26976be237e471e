package echo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/internal/container"
	"github.com/NARUBROWN/spindle/internal/invoker"
	"github.com/NARUBROWN/spindle/internal/pipeline"
	"github.com/NARUBROWN/spindle/internal/resolver"
	"github.com/NARUBROWN/spindle/pkg/boot"
	"github.com/NARUBROWN/spindle/pkg/header"
	"github.com/NARUBROWN/spindle/pkg/httperr"
	"github.com/NARUBROWN/spindle/pkg/path"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type createUser struct {
	Name string `json:"name"`
}

type userController struct{}

func (c *userController) Greet(name string, id header.RequestID) string {
	return "hello " + name + " " + id.String()
}

func (c *userController) GetUser(id path.Int) (userView, error) {
	if id.Value == 0 {
		return userView{}, httperr.NotFound("사용자를 찾을 수 없습니다")
	}
	return userView{ID: id.Value, Name: "ada"}, nil
}

func (c *userController) Create(body createUser) userView {
	return userView{ID: 1, Name: body.Name}
}

func (c *userController) Delete(id path.Int) {}

func (c *userController) Broken(ch chan int) string {
	return "unreachable"
}

func newTestServer(t *testing.T, routes ...func() Route) *echo.Echo {
	t.Helper()

	catalog := container.NewCatalog()
	require.NoError(t, resolver.Register(catalog, resolver.Namespace, false))

	ctr := container.New()
	opts := boot.Options{}.WithDefaults()
	require.NoError(t, ctr.RegisterConstructor(func() *boot.Options { return &opts }))
	require.NoError(t, ctr.RegisterConstructor(resolver.NewUpgrader))
	require.NoError(t, ctr.RegisterConstructor(func() *userController { return &userController{} }))

	mapping := resolver.NewMapping(resolver.MappingConfig{})
	require.NoError(t, mapping.Init(catalog, ctr))

	e := echo.New()
	adapter := NewAdapter(pipeline.NewPipeline(mapping, invoker.NewInvoker(ctr), nil, nil), nil)

	list := make([]Route, 0, len(routes))
	for _, r := range routes {
		list = append(list, r())
	}
	adapter.Mount(e, list)
	return e
}

func route(t *testing.T, method, path string, fn any) func() Route {
	return func() Route {
		meta, err := core.NewHandlerMeta(fn)
		require.NoError(t, err)
		return Route{Method: method, Path: path, Meta: meta}
	}
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"].(string)
}

func TestAdapter_ResolvesNamedQueryAndHeader(t *testing.T) {
	e := newTestServer(t, route(t, http.MethodGet, "/greet", (*userController).Greet))

	req := httptest.NewRequest(http.MethodGet, "/greet?name=ada", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rec := serve(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello ada req-1", rec.Body.String())
}

func TestAdapter_MissingNamedValueIsBadRequest(t *testing.T) {
	e := newTestServer(t, route(t, http.MethodGet, "/greet", (*userController).Greet))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/greet", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMessage(t, rec), "name")
}

func TestAdapter_PathParamAndJSONResult(t *testing.T) {
	e := newTestServer(t, route(t, http.MethodGet, "/users/:id", (*userController).GetUser))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/users/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var view userView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, userView{ID: 7, Name: "ada"}, view)
}

func TestAdapter_InvalidPathParamIsBadRequest(t *testing.T) {
	e := newTestServer(t, route(t, http.MethodGet, "/users/:id", (*userController).GetUser))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/users/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdapter_ReturnedHTTPError(t *testing.T) {
	e := newTestServer(t, route(t, http.MethodGet, "/users/:id", (*userController).GetUser))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/users/0", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "사용자를 찾을 수 없습니다", decodeMessage(t, rec))
}

func TestAdapter_BindsJSONBody(t *testing.T) {
	e := newTestServer(t, route(t, http.MethodPost, "/users", (*userController).Create))

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"grace"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var view userView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "grace", view.Name)
}

func TestAdapter_MalformedBodyIsBadRequest(t *testing.T) {
	e := newTestServer(t, route(t, http.MethodPost, "/users", (*userController).Create))

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(e, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdapter_NoResultWritesNoContent(t *testing.T) {
	e := newTestServer(t, route(t, http.MethodDelete, "/users/:id", (*userController).Delete))

	rec := serve(e, httptest.NewRequest(http.MethodDelete, "/users/3", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAdapter_NoResolverIsServerError(t *testing.T) {
	e := newTestServer(t, route(t, http.MethodGet, "/broken", (*userController).Broken))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/broken", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeMessage(t, rec), "ArgumentResolver가 없습니다")
}

func TestAdapter_UnknownRouteIsHandledByEcho(t *testing.T) {
	e := newTestServer(t, route(t, http.MethodGet, "/greet", (*userController).Greet))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequest_Views(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/items/9?tag=a&tag=b", nil)
	req.Header.Set("X-Test", "1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("9")

	r := NewRequest(c)
	assert.Equal(t, http.MethodGet, r.Method())
	assert.Equal(t, "/items/9", r.Path())
	assert.Equal(t, "9", r.Param("id"))
	assert.Equal(t, map[string]string{"id": "9"}, r.Params())
	assert.Equal(t, []string{"a", "b"}, r.Queries()["tag"])
	assert.Equal(t, "a", r.Query("tag"))
	assert.Equal(t, "1", r.Header("X-Test"))
	assert.Same(t, req, r.(core.RawRequest).Raw())
}

func TestResponseWriter_CommittedAfterWrite(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	rw := NewEchoResponseWriter(c)
	assert.False(t, rw.IsCommitted())

	rw.SetHeader(echo.HeaderContentType, "image/png")
	require.NoError(t, rw.WriteBytes(http.StatusOK, []byte{1, 2}))

	assert.True(t, rw.IsCommitted())
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte{1, 2}, rec.Body.Bytes())
}
