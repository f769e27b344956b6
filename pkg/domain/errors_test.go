package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   ErrorKind
		status int
	}{
		{"invalid", Invalid("slides must be an array"), KindInputValidation, http.StatusBadRequest},
		{"too large", fmt.Errorf("read body: %w", ErrPayloadTooLarge), KindInputValidation, http.StatusBadRequest},
		{"build", BuildFailure(errors.New("zip closed")), KindBuild, http.StatusInternalServerError},
		{"fetch", FetchFailure("http://x/a.png", errors.New("timeout")), KindUpstreamFetch, http.StatusBadGateway},
		{"not found", fmt.Errorf("deck intro: %w", ErrDeckNotFound), KindNotFound, http.StatusNotFound},
		{"busy", BuildFailure(ErrBusy), KindBuild, http.StatusServiceUnavailable},
		{"plain", errors.New("boom"), KindBuild, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.status, StatusOf(tt.err))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := Invalid("bad %s", "layout")

	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "InputValidationError")
	assert.Contains(t, err.Error(), "bad layout")
}
