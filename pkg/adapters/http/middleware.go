package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/aretw0/lectern/internal/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// requestID attaches a request-scoped logger. A client-provided ID is kept.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		logger := s.Logger.With("request_id", id)
		ctx := logging.IntoContext(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe logs and counts every request by its route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routeOf(r)
		if s.Metrics != nil {
			s.Metrics.RequestServed(route, status)
		}
		logging.FromContext(r.Context(), s.Logger).Debug("Request served",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
		)
	})
}

// routeOf returns the matched route pattern. Requests rejected by middleware
// never reach routing, so their pattern is looked up again.
func routeOf(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "unmatched"
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	if rctx.Routes != nil {
		tctx := chi.NewRouteContext()
		if rctx.Routes.Match(tctx, r.Method, r.URL.Path) {
			return tctx.RoutePattern()
		}
	}
	return "unmatched"
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.MaxBody)
		}
		next.ServeHTTP(w, r)
	})
}
