package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/lectern"
	"github.com/aretw0/lectern/internal/logging"
	"github.com/aretw0/lectern/pkg/domain"
	"github.com/aretw0/lectern/pkg/ports"
)

// DecksURI is the resource listing stored decks.
const DecksURI = "lectern://decks"

// ErrOutsideOutputDir is returned for output paths that resolve outside the output directory.
var ErrOutsideOutputDir = errors.New("output path escapes the output directory")

// Service is the presentation service behind the tools.
type Service interface {
	GenerateJSON(ctx context.Context, r io.Reader) (*domain.Artifact, error)
	GenerateDeck(ctx context.Context, id string, opts lectern.RenderOptions) (*domain.Artifact, error)
	Decks() ports.DeckLibrary
}

// GenerateArgs are the arguments of generate_presentation.
type GenerateArgs struct {
	Request    string `json:"request"`
	OutputPath string `json:"output_path"`
}

// GenerateDeckArgs are the arguments of generate_deck.
type GenerateDeckArgs struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	OutputPath string `json:"output_path"`
}

// GenerateResult describes a written artifact.
type GenerateResult struct {
	Path    string `json:"path" jsonschema_description:"Absolute path of the written .pptx file"`
	Slides  int    `json:"slides" jsonschema_description:"Number of slides in the deck"`
	Bytes   int    `json:"bytes" jsonschema_description:"Size of the file in bytes"`
	Skipped int    `json:"skipped" jsonschema_description:"Elements that could not be rendered and were dropped"`
}

// Server exposes the presentation service as MCP tools.
type Server struct {
	svc       Service
	outputDir string
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the MCP server.
type Option func(*Server)

// WithOutputDir sets where artifacts with a relative or empty output path are written.
func WithOutputDir(dir string) Option {
	return func(s *Server) {
		s.outputDir = dir
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(svc Service, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		mcpServer: server.NewMCPServer("lectern-mcp", strings.TrimSpace(lectern.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.outputDir == "" {
		s.outputDir = os.TempDir()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on the given port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	generateTool := mcp.NewTool("generate_presentation",
		mcp.WithDescription("Build a .pptx deck from a JSON presentation request and write it to disk."),
		mcp.WithString("request", mcp.Required(), mcp.Description(`Presentation request as a JSON string, e.g. {"title":"Q3","slides":[{"objects":[{"text":"Hello"}]}]}`)),
		mcp.WithString("output_path", mcp.Description("Where to write the file. Relative paths resolve against the server output directory.")),
		mcp.WithOutputSchema[GenerateResult](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	deckTool := mcp.NewTool("generate_deck",
		mcp.WithDescription("Build a stored deck by ID and write it to disk."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Deck ID as returned by list_decks")),
		mcp.WithString("title", mcp.Description("Overrides the deck title")),
		mcp.WithString("output_path", mcp.Description("Where to write the file")),
		mcp.WithOutputSchema[GenerateResult](),
	)
	s.mcpServer.AddTool(deckTool, mcp.NewStructuredToolHandler(s.handleGenerateDeck))

	s.mcpServer.AddTool(mcp.NewTool("list_decks",
		mcp.WithDescription("List the stored decks that generate_deck can build."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := s.decksJSON(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args GenerateArgs) (GenerateResult, error) {
	if strings.TrimSpace(args.Request) == "" {
		return GenerateResult{}, errors.New("request is required")
	}
	art, err := s.svc.GenerateJSON(ctx, strings.NewReader(args.Request))
	if err != nil {
		return GenerateResult{}, fmt.Errorf("generate failed: %w", err)
	}
	return s.write(art, args.OutputPath)
}

func (s *Server) handleGenerateDeck(ctx context.Context, request mcp.CallToolRequest, args GenerateDeckArgs) (GenerateResult, error) {
	art, err := s.svc.GenerateDeck(ctx, args.ID, lectern.RenderOptions{Title: args.Title})
	if err != nil {
		return GenerateResult{}, fmt.Errorf("generate failed: %w", err)
	}
	return s.write(art, args.OutputPath)
}

// write stores the artifact. An empty path uses the artifact filename.
func (s *Server) write(art *domain.Artifact, path string) (GenerateResult, error) {
	path, err := s.resolve(path, art.Filename)
	if err != nil {
		return GenerateResult{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return GenerateResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, art.Data, 0o644); err != nil {
		return GenerateResult{}, fmt.Errorf("failed to write artifact: %w", err)
	}
	s.logger.Info("Artifact written", "path", path, "slides", art.Slides, "bytes", len(art.Data))

	return GenerateResult{
		Path:    path,
		Slides:  art.Slides,
		Bytes:   len(art.Data),
		Skipped: art.Skipped,
	}, nil
}

// resolve confines path to the output directory. Absolute paths are accepted
// only when they already point inside it.
func (s *Server) resolve(path, fallback string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = fallback
	}
	root, err := filepath.Abs(s.outputDir)
	if err != nil {
		return "", fmt.Errorf("invalid output directory: %w", err)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)
	if filepath.Ext(path) == "" {
		path += ".pptx"
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || !filepath.IsLocal(rel) {
		return "", &domain.Error{Kind: domain.KindInputValidation, Err: fmt.Errorf("%w: %s", ErrOutsideOutputDir, path)}
	}
	return path, nil
}

func (s *Server) decksJSON(ctx context.Context) ([]byte, error) {
	decks := []ports.DeckSummary{}
	if lib := s.svc.Decks(); lib != nil {
		var err error
		if decks, err = lib.List(ctx); err != nil {
			return nil, err
		}
	}
	return json.Marshal(decks)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DecksURI, "Stored decks",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := s.decksJSON(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list decks: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      DecksURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
