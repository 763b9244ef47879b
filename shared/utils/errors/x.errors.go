package xerrors

import (
	"errors"
	"net/http"
)

// Configuration / startup
var (
	ErrMissingDBConfig = errors.New("MongoDB URI or DB_NAME is not defined. Please check your .env file or environment variables.")
	ErrNotReady        = errors.New("Failed to connect to MongoDB. Server will not start.")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Records
var (
	ErrRequiredFields = errors.New("Name and album are required fields.")
)

// HTTPError is an error that declares the status it should be answered with.
type HTTPError struct {
	Status int
	Msg    string
	Err    error
}

func (e *HTTPError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *HTTPError) Unwrap() error { return e.Err }

func WithStatus(status int, err error) error {
	return &HTTPError{Status: status, Err: err}
}

func BadRequest(err error) error {
	return WithStatus(http.StatusBadRequest, err)
}

// StatusOf returns the status declared anywhere in err's chain, or 500.
func StatusOf(err error) int {
	var herr *HTTPError
	if errors.As(err, &herr) && herr.Status != 0 {
		return herr.Status
	}
	return http.StatusInternalServerError
}
