package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
)

type fakeRequest struct {
	ctx       context.Context
	method    string
	path      string
	params    map[string]string
	queries   map[string][]string
	headers   http.Header
	body      []byte
	bindValue any
	bindErr   error
	form      *multipart.Form
	formErr   error
	raw       *http.Request
}

func newFakeRequest() *fakeRequest {
	return &fakeRequest{
		ctx:     context.Background(),
		method:  "GET",
		path:    "/",
		params:  map[string]string{},
		queries: map[string][]string{},
		headers: http.Header{},
	}
}

func (r *fakeRequest) Context() context.Context     { return r.ctx }
func (r *fakeRequest) Method() string               { return r.method }
func (r *fakeRequest) Path() string                 { return r.path }
func (r *fakeRequest) Header(name string) string    { return r.headers.Get(name) }
func (r *fakeRequest) Param(name string) string     { return r.params[name] }
func (r *fakeRequest) Headers() http.Header         { return r.headers }
func (r *fakeRequest) Params() map[string]string    { return r.params }
func (r *fakeRequest) Queries() map[string][]string { return r.queries }
func (r *fakeRequest) Body() io.Reader              { return bytes.NewReader(r.body) }
func (r *fakeRequest) Raw() *http.Request           { return r.raw }

func (r *fakeRequest) MultipartForm() (*multipart.Form, error) {
	return r.form, r.formErr
}

func (r *fakeRequest) Query(name string) string {
	if vs, ok := r.queries[name]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func (r *fakeRequest) Bind(out any) error {
	if r.bindErr != nil {
		return r.bindErr
	}
	if r.bindValue != nil {
		reflect.ValueOf(out).Elem().Set(reflect.ValueOf(r.bindValue))
		return nil
	}
	if len(r.body) > 0 {
		return json.Unmarshal(r.body, out)
	}
	return nil
}

type fakeResponse struct {
	headers   http.Header
	status    int
	body      any
	committed bool
	raw       http.ResponseWriter
}

func newFakeResponse() *fakeResponse {
	return &fakeResponse{headers: http.Header{}}
}

func (w *fakeResponse) SetHeader(key, value string) { w.headers.Set(key, value) }
func (w *fakeResponse) AddHeader(key, value string) { w.headers.Add(key, value) }
func (w *fakeResponse) IsCommitted() bool           { return w.committed }
func (w *fakeResponse) Raw() http.ResponseWriter    { return w.raw }

func (w *fakeResponse) WriteStatus(status int) error {
	w.status, w.committed = status, true
	return nil
}

func (w *fakeResponse) WriteJSON(status int, value any) error {
	w.status, w.body, w.committed = status, value, true
	return nil
}

func (w *fakeResponse) WriteString(status int, value string) error {
	w.status, w.body, w.committed = status, value, true
	return nil
}

func (w *fakeResponse) WriteBytes(status int, value []byte) error {
	w.status, w.body, w.committed = status, value, true
	return nil
}
