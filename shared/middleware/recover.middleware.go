package middleware

import (
	"fmt"
	"net/http"
)

// ErrorFunc writes the response for an error raised while serving r.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

// Recover turns a handler panic into an error passed to onError.
func Recover(onError ErrorFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				onError(w, r, err)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
