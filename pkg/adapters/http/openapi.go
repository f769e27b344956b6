package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	"github.com/aretw0/lectern/api"
	"github.com/aretw0/lectern/pkg/domain"
)

type validator struct {
	router routers.Router
}

func loadSpec(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return doc, nil
}

func newValidator(data []byte) (*validator, error) {
	doc, err := loadSpec(data)
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI router: %w", err)
	}
	return &validator{router: router}, nil
}

// middleware rejects requests that do not match the document. Routes the
// document does not describe pass through untouched.
func (v *validator) middleware(s *Server) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, params, err := v.router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if r.Body != nil && r.Body != http.NoBody {
				data, err := readBody(r)
				if err != nil {
					s.writeError(w, r, err)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(data))
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: params,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				s.writeError(w, r, domain.Invalid("%v", err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var specVersion = func() string {
	doc, err := loadSpec(api.Spec())
	if err != nil || doc.Info == nil {
		return "unknown"
	}
	return doc.Info.Version
}()

func apiVersion() string { return specVersion }
