package http

import (
	"errors"
	"net/http"

	"github.com/aretw0/lectern/internal/logging"
	"github.com/aretw0/lectern/pkg/domain"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   domain.ErrorKind `json:"error"`
	Details string           `json:"details,omitempty"`
}

var stableDetails = map[domain.ErrorKind]string{
	domain.KindBuild:         "the presentation could not be built",
	domain.KindUpstreamFetch: "an upstream resource could not be fetched",
	domain.KindElementRender: "an element could not be rendered",
}

// writeError maps err to its stable kind and status. Build and upstream
// chains are only exposed in development mode; validation and lookup
// messages describe the client's own input and are always returned.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status := domain.StatusOf(err)

	logger := logging.FromContext(r.Context(), s.Logger)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "kind", kind, "status", status, "err", err)
	} else {
		logger.Warn("Request rejected", "kind", kind, "status", status, "err", err)
	}

	resp := ErrorResponse{Error: kind}
	switch {
	case s.Development:
		resp.Details = err.Error()
	case errors.Is(err, domain.ErrBusy):
		resp.Details = domain.ErrBusy.Error()
	case kind == domain.KindInputValidation, kind == domain.KindNotFound:
		resp.Details = err.Error()
	default:
		resp.Details = stableDetails[kind]
	}
	writeJSON(w, r, status, resp)
}
