package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/aretw0/lectern"
	"github.com/aretw0/lectern/pkg/domain"
	"github.com/aretw0/lectern/pkg/ports"
)

// Artifact response headers.
const (
	SlidesHeader  = "X-Lectern-Slides"
	SkippedHeader = "X-Lectern-Skipped-Elements"
)

// readBody reads the capped request body. Exceeding the cap is a validation error.
func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &domain.Error{
				Kind: domain.KindInputValidation,
				Err:  fmt.Errorf("%w: body exceeds %d bytes", domain.ErrPayloadTooLarge, tooLarge.Limit),
			}
		}
		return nil, domain.Invalid("failed to read body: %v", err)
	}
	return data, nil
}

func decodeBody(r *http.Request) (any, error) {
	data, err := readBody(r)
	if err != nil {
		return nil, err
	}
	return lectern.DecodeJSON(bytes.NewReader(data))
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	art, err := s.Service.Generate(r.Context(), raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, art)
}

func (s *Server) addElement(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := renderOptions(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		raw, err := decodeBody(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		art, err := s.Service.GenerateElement(r.Context(), kind, raw, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeArtifact(w, art)
	}
}

func (s *Server) listDecks(w http.ResponseWriter, r *http.Request) {
	lib := s.Service.Decks()
	if lib == nil {
		writeJSON(w, r, http.StatusOK, []ports.DeckSummary{})
		return
	}
	decks, err := lib.List(r.Context())
	if err != nil {
		s.writeError(w, r, domain.BuildFailure(err))
		return
	}
	writeJSON(w, r, http.StatusOK, decks)
}

func (s *Server) getDeck(w http.ResponseWriter, r *http.Request) {
	id, err := deckID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	lib := s.Service.Decks()
	if lib == nil {
		s.writeError(w, r, &domain.Error{Kind: domain.KindNotFound, Err: fmt.Errorf("%w: %s", domain.ErrDeckNotFound, id)})
		return
	}
	deck, err := lib.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, deck)
}

func (s *Server) generateDeck(w http.ResponseWriter, r *http.Request) {
	id, err := deckID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	art, err := s.Service.GenerateDeck(r.Context(), id, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, art)
}

func deckID(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", domain.Invalid("invalid deck id: %v", err)
	}
	return id, nil
}

func renderOptions(r *http.Request) (lectern.RenderOptions, error) {
	var title, layout *string
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "title", q, &title); err != nil {
		return lectern.RenderOptions{}, domain.Invalid("invalid title: %v", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "layout", q, &layout); err != nil {
		return lectern.RenderOptions{}, domain.Invalid("invalid layout: %v", err)
	}

	var opts lectern.RenderOptions
	if title != nil {
		opts.Title = *title
	}
	if layout != nil {
		opts.Layout = *layout
	}
	return opts, nil
}

// writeArtifact sends a fully encoded deck.
func writeArtifact(w http.ResponseWriter, art *domain.Artifact) {
	h := w.Header()
	h.Set("Content-Type", art.MIMEType)
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, art.Filename))
	h.Set("Content-Length", strconv.Itoa(len(art.Data)))
	h.Set(SlidesHeader, strconv.Itoa(art.Slides))
	h.Set(SkippedHeader, strconv.Itoa(art.Skipped))
	w.WriteHeader(http.StatusOK)
	w.Write(art.Data)
}
