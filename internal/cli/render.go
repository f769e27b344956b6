package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/aretw0/lectern"
	"github.com/aretw0/lectern/internal/presentation/outline"
	"github.com/aretw0/lectern/pkg/domain"
)

// ErrTerminalOutput is returned when a binary artifact would be written to a terminal.
var ErrTerminalOutput = errors.New("refusing to write a binary deck to a terminal; use --output")

// Generator builds decks from request documents.
type Generator interface {
	GenerateJSON(ctx context.Context, r io.Reader) (*domain.Artifact, error)
}

// Render builds the request read from in. The artifact goes to the file at
// output, or to stdout when output is "-" and stdout is not a terminal.
// It returns the path written, or "-".
func Render(ctx context.Context, gen Generator, in io.Reader, output string, stdout io.Writer, isTerminal bool) (string, *domain.Artifact, error) {
	if output == "-" && isTerminal {
		return "", nil, ErrTerminalOutput
	}

	art, err := gen.GenerateJSON(ctx, in)
	if err != nil {
		return "", nil, err
	}

	switch output {
	case "-":
		if _, err := stdout.Write(art.Data); err != nil {
			return "", nil, fmt.Errorf("failed to write artifact: %w", err)
		}
	case "":
		output = art.Filename
		fallthrough
	default:
		if err := os.WriteFile(output, art.Data, 0o644); err != nil {
			return "", nil, fmt.Errorf("failed to write artifact: %w", err)
		}
	}
	return output, art, nil
}

// Inspect decodes a .pptx file and returns its Markdown outline.
func Inspect(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return InspectBytes(data)
}

// InspectBytes decodes an encoded deck and returns its Markdown outline.
func InspectBytes(data []byte) (string, error) {
	p, err := ppt.ReadFrom(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not a readable .pptx: %w", err)
	}
	return outline.Generate(p), nil
}

var _ Generator = (*lectern.Service)(nil)
