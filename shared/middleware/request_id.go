package middleware

import (
	"context"
	"net/http"

	"record-service/shared/utils/id"
)

type contextKey string

const (
	ContextRequestID contextKey = "request_id"
	HeaderRequestID             = "X-Request-ID"
)

// RequestID tags every request with an ID, keeping one supplied by the caller.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderRequestID)
		if reqID == "" {
			reqID = id.GenerateULID("req")
		}
		w.Header().Set(HeaderRequestID, reqID)

		ctx := context.WithValue(r.Context(), ContextRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextRequestID).(string); ok {
		return v
	}
	return ""
}
