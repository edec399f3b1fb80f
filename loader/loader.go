// Package loader fetches shader source text from an http(s) base URL or a
// local directory.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ResourceFetchError reports a failed fetch of a shader source.
type ResourceFetchError struct {
	URL        string
	StatusCode int // zero when no HTTP response was received
	Err        error
}

func (e *ResourceFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: bad response status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s failed", e.URL)
}

func (e *ResourceFetchError) Unwrap() error {
	return e.Err
}

type headerTransport struct {
	Transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "goshaderplay")
	req.Header.Set("Accept", "text/plain, */*")
	return t.Transport.RoundTrip(req)
}

// Loader resolves shader paths against a base location.
type Loader struct {
	base   *url.URL
	client *http.Client
}

// New creates a Loader. base is either an http(s) URL or a local directory.
func New(base string) (*Loader, error) {
	u, err := parseBase(base)
	if err != nil {
		return nil, err
	}
	return &Loader{
		base: u,
		client: &http.Client{
			Transport: &headerTransport{Transport: http.DefaultTransport},
		},
	}, nil
}

func parseBase(base string) (*url.URL, error) {
	if base == "" {
		base = "."
	}
	if u, err := url.Parse(base); err == nil && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "file") {
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		return u, nil
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base %q: %w", base, err)
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs) + "/"}, nil
}

// Resolve returns the absolute location of ref relative to the base.
func (l *Loader) Resolve(ref string) (*url.URL, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid resource path %q: %w", ref, err)
	}
	return l.base.ResolveReference(r), nil
}

// FetchText fetches a single resource and normalizes CRLF line endings to LF.
// There are no retries.
func (l *Loader) FetchText(ctx context.Context, ref string) (string, error) {
	body, err := l.FetchBytes(ctx, ref)
	if err != nil {
		return "", err
	}
	return normalizeNewlines(string(body)), nil
}

// FetchBytes fetches a single resource unmodified.
func (l *Loader) FetchBytes(ctx context.Context, ref string) ([]byte, error) {
	u, err := l.Resolve(ref)
	if err != nil {
		return nil, &ResourceFetchError{URL: ref, Err: err}
	}

	var body []byte
	switch u.Scheme {
	case "http", "https":
		body, err = l.fetchHTTP(ctx, u)
	default:
		body, err = os.ReadFile(filepath.FromSlash(u.Path))
		if err != nil {
			err = &ResourceFetchError{URL: u.String(), Err: err}
		}
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (l *Loader) fetchHTTP(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &ResourceFetchError{URL: u.String(), Err: err}
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &ResourceFetchError{URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResourceFetchError{URL: u.String(), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResourceFetchError{URL: u.String(), Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return body, nil
}

// FetchPair fetches the vertex and fragment sources concurrently. Both must
// succeed; the first failure is returned.
func (l *Loader) FetchPair(ctx context.Context, vertRef, fragRef string) (vert, frag string, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vert, err = l.FetchText(gctx, vertRef)
		return err
	})
	g.Go(func() error {
		var err error
		frag, err = l.FetchText(gctx, fragRef)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return vert, frag, nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
