// Package httpsource renders destinations from markup fetched over HTTP(S).
//
// A fetched page is parsed into a Document. Elements carrying a
// data-fragment-host attribute become placeholder containers for fragments,
// and a body carrying data-unload-guard makes the document ask the
// configured confirmation before it unloads.
package httpsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	_ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store
	"golang.org/x/net/html"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Attributes recognized in fetched markup.
const (
	HostAttr  = "data-fragment-host"
	GuardAttr = "data-unload-guard"
)

const maxBodyBytes = 4 << 20

// StatusError reports a non-2xx response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// ConfirmFunc decides whether a guarded document may unload.
type ConfirmFunc func(ctx context.Context, doc *Document) (bool, error)

// Options configures a Source.
type Options struct {
	BaseURL string        // Relative addresses resolve against it
	Client  *http.Client  // Defaults to a client with Timeout
	Timeout time.Duration // Request timeout for the default client (default 30s)
	Confirm ConfirmFunc   // Unload confirmation for guarded documents; nil allows
	Logger  *slog.Logger
}

// Source is a view.Renderer that fetches markup over HTTP.
type Source struct {
	base    *url.URL
	client  *http.Client
	confirm ConfirmFunc
	logger  *slog.Logger
}

// New creates a Source.
func New(opts Options) (*Source, error) {
	var base *url.URL
	if opts.BaseURL != "" {
		u, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("httpsource: base url: %w", err)
		}
		base = u
	}
	if opts.Client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		opts.Client = &http.Client{Timeout: timeout}
	}
	return &Source{
		base:    base,
		client:  opts.Client,
		confirm: opts.Confirm,
		logger:  internal.OrDefault(opts.Logger, "httpsource"),
	}, nil
}

// Resolve turns an address into an absolute URL.
func (s *Source) Resolve(address string) (string, error) {
	u, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("httpsource: address %q: %w", address, err)
	}
	if s.base != nil {
		u = s.base.ResolveReference(u)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("httpsource: address %q is not absolute", address)
	}
	return u.String(), nil
}

// Render fetches address, parses it and mounts the Document into the
// element. Placeholders are created as hidden children of into when it is
// a view.Container.
func (s *Source) Render(ctx context.Context, address string, into view.Element) (view.Root, error) {
	target, err := s.Resolve(address)
	if err != nil {
		return nil, err
	}

	node, err := s.fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	doc := newDocument(address, target, node)
	if err := doc.createHosts(into); err != nil {
		doc.Dispose()
		return nil, err
	}
	into.Mount(doc)

	s.logger.Debug("Document rendered", "url", target, "title", doc.Title(), "hosts", len(doc.hostIDs))

	if doc.guarded {
		return &guardedDocument{Document: doc, confirm: s.confirm}, nil
	}
	return doc, nil
}

func (s *Source) fetch(ctx context.Context, target string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("httpsource: request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpsource: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{URL: target, Code: resp.StatusCode}
	}

	node, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("httpsource: parse %s: %w", target, err)
	}
	return node, nil
}
