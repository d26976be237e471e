package echo

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/NARUBROWN/spindle/core"
	"github.com/labstack/echo/v4"
)

type echoRequest struct {
	echo echo.Context
}

// NewRequest는 echo.Context를 core.Request로 감쌉니다.
func NewRequest(c echo.Context) core.Request {
	return &echoRequest{echo: c}
}

func (e *echoRequest) Context() context.Context {
	return e.echo.Request().Context()
}

func (e *echoRequest) Method() string {
	return e.echo.Request().Method
}

func (e *echoRequest) Path() string {
	return e.echo.Request().URL.Path
}

func (e *echoRequest) Header(name string) string {
	return e.echo.Request().Header.Get(name)
}

func (e *echoRequest) Param(name string) string {
	return e.echo.Param(name)
}

func (e *echoRequest) Query(name string) string {
	return e.echo.QueryParam(name)
}

func (e *echoRequest) Headers() http.Header {
	return e.echo.Request().Header
}

func (e *echoRequest) Params() map[string]string {
	names := e.echo.ParamNames()
	values := e.echo.ParamValues()

	params := make(map[string]string, len(names))

	for i, name := range names {
		if i < len(values) {
			params[name] = values[i]
		}
	}

	return params
}

func (e *echoRequest) Queries() map[string][]string {
	return e.echo.QueryParams()
}

func (e *echoRequest) Bind(out any) error {
	return e.echo.Bind(out)
}

func (e *echoRequest) Body() io.Reader {
	return e.echo.Request().Body
}

func (e *echoRequest) MultipartForm() (*multipart.Form, error) {
	return e.echo.MultipartForm()
}

func (e *echoRequest) Raw() *http.Request {
	return e.echo.Request()
}
