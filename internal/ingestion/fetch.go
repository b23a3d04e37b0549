package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

// DefaultFetchTimeout is the default HTTP request timeout.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for document requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; SpecAgent/1.0)"

// FetchOptions configures FetchURL.
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	Client    *http.Client // nil builds a client with Timeout
}

// DefaultFetchOptions returns sensible defaults for fetching.
func DefaultFetchOptions() *FetchOptions {
	return &FetchOptions{
		Timeout:   DefaultFetchTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// FetchURL downloads a published specification page and converts it like an
// upload. The file name is the last path segment, or the host when the path is empty.
func FetchURL(ctx context.Context, rawURL string, opts *FetchOptions) (*Document, error) {
	if opts == nil {
		opts = DefaultFetchOptions()
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &Error{Path: rawURL, Message: "invalid URL", Cause: err}
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultFetchTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Path: rawURL, Message: "failed to create request", Cause: err}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Path: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Path: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentBytes+1))
	if err != nil {
		return nil, &Error{Path: rawURL, Message: "failed to read response body", Cause: err}
	}

	return FromBytes(fileNameFromURL(parsed), resp.Header.Get("Content-Type"), data)
}

func fileNameFromURL(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "/" || name == "." || name == "" {
		return u.Hostname()
	}
	return name
}
