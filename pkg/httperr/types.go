package httperr

import "net/http"

type HTTPError struct {
	Status  int
	Message string
	Cause   error
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Cause
}

func New(status int, msg string, cause error) error {
	return &HTTPError{Status: status, Message: msg, Cause: cause}
}

func NotFound(msg string) error {
	return &HTTPError{Status: http.StatusNotFound, Message: msg}
}

func BadRequest(msg string) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) error {
	return &HTTPError{Status: http.StatusUnauthorized, Message: msg}
}

func UpgradeRequired(msg string) error {
	return &HTTPError{Status: http.StatusUpgradeRequired, Message: msg}
}
