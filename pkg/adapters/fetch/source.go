// Package fetch resolves image references (data URIs, http(s) URLs and,
// optionally, local files) into bytes with a sniffed MIME type.
package fetch

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/aretw0/lectern/internal/logging"
	"github.com/aretw0/lectern/pkg/domain"
	"github.com/aretw0/lectern/pkg/ports"
)

const (
	// DefaultTimeout bounds a single remote fetch.
	DefaultTimeout = 5 * time.Second

	// DefaultMaxBytes caps the size of any resolved image.
	DefaultMaxBytes int64 = 20 << 20
)

var (
	// ErrTooLarge is returned when an image is bigger than the configured cap.
	ErrTooLarge = errors.New("image exceeds size limit")
	// ErrNotImage is returned when the sniffed content type is not an image.
	ErrNotImage = errors.New("resource is not an image")
	// ErrLocalDisabled is returned for plain paths unless WithLocalFiles is set.
	ErrLocalDisabled = errors.New("local file references are disabled")
	// ErrBadDataURI is returned for data URIs that cannot be decoded.
	ErrBadDataURI = errors.New("malformed data URI")
)

// Outcome labels reported to a Recorder.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeHit   = "cache_hit"
)

// Recorder observes fetch outcomes.
type Recorder interface {
	FetchCompleted(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) FetchCompleted(string) {}

// Source implements ports.ImageSource.
type Source struct {
	client     *http.Client
	timeout    time.Duration
	maxBytes   int64
	allowLocal bool
	baseDir    string
	userAgent  string
	logger     *slog.Logger
	recorder   Recorder
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// WithTimeout bounds each remote fetch. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxBytes caps the image size. Non-positive values are ignored.
func WithMaxBytes(n int64) Option {
	return func(s *Source) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithLocalFiles enables plain paths, resolved against baseDir when relative.
func WithLocalFiles(baseDir string) Option {
	return func(s *Source) {
		s.allowLocal = true
		s.baseDir = baseDir
	}
}

// WithUserAgent sets the User-Agent header of remote fetches.
func WithUserAgent(ua string) Option {
	return func(s *Source) {
		s.userAgent = ua
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		s.logger = l
	}
}

// WithRecorder sets the outcome observer.
func WithRecorder(r Recorder) Option {
	return func(s *Source) {
		s.recorder = r
	}
}

// New creates a Source.
func New(opts ...Option) *Source {
	s := &Source{
		client:    http.DefaultClient,
		timeout:   DefaultTimeout,
		maxBytes:  DefaultMaxBytes,
		userAgent: "lectern",
		logger:    logging.NewNop(),
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch resolves ref. Every failure is an UpstreamFetchError.
func (s *Source) Fetch(ctx context.Context, ref string) (*ports.Image, error) {
	data, err := s.read(ctx, ref)
	if err == nil {
		var img *ports.Image
		img, err = s.sniff(data)
		if err == nil {
			s.recorder.FetchCompleted(OutcomeOK)
			return img, nil
		}
	}

	s.recorder.FetchCompleted(OutcomeError)
	logging.FromContext(ctx, s.logger).Debug("Image fetch failed", "ref", redact(ref), "err", err)
	return nil, domain.FetchFailure(redact(ref), err)
}

func (s *Source) read(ctx context.Context, ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case hasPrefixFold(ref, "data:"):
		return s.decodeDataURI(ref)
	case hasPrefixFold(ref, "http://"), hasPrefixFold(ref, "https://"):
		return s.get(ctx, ref)
	case hasPrefixFold(ref, "file://"):
		u, err := url.Parse(ref)
		if err != nil {
			return nil, err
		}
		return s.readLocal(u.Path)
	}
	return s.readLocal(ref)
}

func (s *Source) decodeDataURI(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(ref[len("data:"):], ",")
	if !ok {
		return nil, ErrBadDataURI
	}
	if !strings.HasSuffix(strings.ToLower(meta), ";base64") {
		decoded, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
		}
		return s.capped([]byte(decoded))
	}
	if int64(base64.StdEncoding.DecodedLen(len(payload))) > s.maxBytes+2 {
		return nil, ErrTooLarge
	}
	payload = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
		}
	}
	return s.capped(data)
}

func (s *Source) get(ctx context.Context, ref string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if resp.ContentLength > s.maxBytes {
		return nil, ErrTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	return s.capped(data)
}

func (s *Source) readLocal(path string) ([]byte, error) {
	if !s.allowLocal {
		return nil, ErrLocalDisabled
	}
	if !filepath.IsAbs(path) && s.baseDir != "" {
		path = filepath.Join(s.baseDir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > s.maxBytes {
		return nil, ErrTooLarge
	}
	return os.ReadFile(path)
}

func (s *Source) capped(data []byte) ([]byte, error) {
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

func (s *Source) sniff(data []byte) (*ports.Image, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}
	mime, _, _ := strings.Cut(mt.String(), ";")
	return &ports.Image{Data: data, MIMEType: mime}, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// redact shortens data URIs for logs and error messages.
func redact(ref string) string {
	if hasPrefixFold(ref, "data:") {
		meta, _, _ := strings.Cut(ref, ",")
		return meta + ",…"
	}
	return ref
}
