// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source resolves collect inputs (file paths, glob patterns, URLs,
// or "-" for stdin) and opens them for reading.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/getids/internal/httputil"
	"github.com/pdiddy/getids/internal/logger"
	"github.com/pdiddy/getids/pkg/types"
)

// Stdin is the input name that reads the document from standard input.
const Stdin = "-"

var (
	// ErrNoMatch is returned when a glob pattern matches no files.
	ErrNoMatch = errors.New("pattern matches no files")

	// ErrStdinConsumed is returned when "-" is opened more than once.
	ErrStdinConsumed = errors.New("standard input already read")
)

// Kind classifies an input.
type Kind int

const (
	KindFile Kind = iota
	KindGlob
	KindURL
	KindStdin
)

func (k Kind) String() string {
	switch k {
	case KindGlob:
		return "glob"
	case KindURL:
		return "url"
	case KindStdin:
		return "stdin"
	default:
		return "file"
	}
}

// Classify determines the input kind and returns the trimmed input.
func Classify(input string) (Kind, string) {
	input = strings.TrimSpace(input)

	if input == Stdin {
		return KindStdin, input
	}
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return KindURL, input
	}
	if strings.ContainsAny(input, "*?[") {
		return KindGlob, input
	}
	return KindFile, input
}

// Expand replaces glob patterns with the files they match, in sorted order,
// and keeps other inputs as they are. A pattern that matches nothing is an
// error wrapping ErrNoMatch.
func Expand(inputs []string) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		kind, norm := Classify(in)
		if kind != KindGlob {
			out = append(out, norm)
			continue
		}

		matches, err := filepath.Glob(norm)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", norm, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, norm)
		}
		sort.Strings(matches)
		logger.Debug("%s expands to %d file(s)", norm, len(matches))
		out = append(out, matches...)
	}
	return out, nil
}

// Opener opens inputs for reading.
type Opener struct {
	client    *http.Client
	cfg       types.HTTPConfig
	stdin     io.Reader
	stdinUsed bool
}

// NewOpener returns an Opener fetching URLs with client and cfg and reading
// the "-" input from stdin.
func NewOpener(client *http.Client, cfg types.HTTPConfig, stdin io.Reader) *Opener {
	return &Opener{client: client, cfg: cfg, stdin: stdin}
}

// Open returns a reader for one input. Glob patterns must be expanded first.
// Stdin can be opened once; a second "-" fails with ErrStdinConsumed.
func (o *Opener) Open(ctx context.Context, input string) (io.ReadCloser, error) {
	kind, norm := Classify(input)
	switch kind {
	case KindStdin:
		if o.stdin == nil {
			return nil, fmt.Errorf("no standard input available")
		}
		if o.stdinUsed {
			return nil, ErrStdinConsumed
		}
		o.stdinUsed = true
		return io.NopCloser(o.stdin), nil
	case KindURL:
		return o.fetch(ctx, norm)
	case KindGlob:
		return nil, fmt.Errorf("unexpanded glob pattern %q", norm)
	}

	f, err := os.Open(norm)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", norm, err)
	}
	return f, nil
}

// fetch GETs a page, setting User-Agent and any configured headers.
func (o *Opener) fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if o.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", o.cfg.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	for k, v := range o.cfg.Headers {
		req.Header.Set(k, v)
	}

	logger.Debug("GET %s", rawURL)
	resp, err := httputil.DoWithRetry(ctx, o.client, req, o.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}
