package handler

import (
	"fmt"
	"net/http"

	"record-service/shared/middleware"
	"record-service/shared/response"
	"record-service/shared/utils/errors"

	"go.uber.org/zap"
)

// HandlerFunc is a route handler that leaves error formatting to the
// ErrorResponder.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorResponder is the single place errors become HTTP responses.
type ErrorResponder struct {
	logger *zap.Logger
}

func NewErrorResponder(logger *zap.Logger) *ErrorResponder {
	return &ErrorResponder{logger: logger}
}

// Handle adapts fn to net/http, sending any returned error to Respond.
func (e *ErrorResponder) Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			e.Respond(w, r, err)
		}
	}
}

// Respond logs err server-side and writes {"error": msg} with the error's
// declared status, or 500.
func (e *ErrorResponder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	status := xerrors.StatusOf(err)
	msg := err.Error()
	if msg == "" {
		msg = response.DefaultErrorMessage
	}

	e.logger.Error(msg,
		zap.Error(err),
		zap.Int("status", status),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetRequestID(r.Context())))

	response.Error(w, status, msg)
}

func (e *ErrorResponder) NotFound(w http.ResponseWriter, r *http.Request) {
	e.Respond(w, r, &xerrors.HTTPError{
		Status: http.StatusNotFound,
		Msg:    fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
	})
}

func (e *ErrorResponder) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	e.Respond(w, r, &xerrors.HTTPError{
		Status: http.StatusMethodNotAllowed,
		Msg:    fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
	})
}
