package router

import (
	"net/http"

	"record-service/internal/handler"
	"record-service/shared/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Options struct {
	AllowedOrigins []string
	// RateLimit wraps every route when set.
	RateLimit func(http.Handler) http.Handler
}

func SetupRoutes(
	r chi.Router,
	h *handler.RecordHandler,
	errs *handler.ErrorResponder,
	opts Options,
) chi.Router {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// ---- Global Middleware ----
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(errs.Respond))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: false, // must be false when using "*"
		MaxAge:           300,
	}))
	if opts.RateLimit != nil {
		r.Use(opts.RateLimit)
	}

	r.Post("/records", errs.Handle(h.CreateRecord))
	r.Get("/records", errs.Handle(h.GetRecords))

	// Catch-all
	r.NotFound(errs.NotFound)
	r.MethodNotAllowed(errs.MethodNotAllowed)

	return r
}
