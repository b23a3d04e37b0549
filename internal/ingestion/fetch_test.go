package ingestion

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchURL_HTML(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><nav>Menu</nav><main><p>Comply with IBC 2015.</p></main></body></html>"))
	}))
	defer server.Close()

	doc, err := FetchURL(t.Context(), server.URL+"/specs/013300", nil)
	require.NoError(t, err)

	assert.Equal(t, "013300", doc.FileName)
	assert.Equal(t, "Comply with IBC 2015.", doc.Text)
	assert.NotContains(t, doc.Text, "Menu")
	assert.Equal(t, FormatHTML, doc.Metadata.Format)
	assert.Equal(t, DefaultUserAgent, gotAgent)
}

func TestFetchURL_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Line one\r\nLine two"))
	}))
	defer server.Close()

	doc, err := FetchURL(t.Context(), server.URL+"/013300.txt", &FetchOptions{Headers: map[string]string{"Accept": "text/plain"}})
	require.NoError(t, err)
	assert.Equal(t, "013300.txt", doc.FileName)
	assert.Equal(t, "Line one\nLine two", doc.Text)
}

func TestFetchURL_Errors(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFound.Close()

	pdf := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer pdf.Close()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"invalid", "not-a-valid-url", "invalid URL"},
		{"unsupported scheme", "ftp://example.com/spec.txt", "invalid URL"},
		{"status", notFound.URL + "/spec.txt", "HTTP status 404"},
		{"binary", pdf.URL + "/spec.pdf", "unsupported document format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FetchURL(t.Context(), tt.url, nil)
			require.Error(t, err)
			var ingestErr *Error
			assert.ErrorAs(t, err, &ingestErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFetchURL_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strings.Repeat("a", MaxDocumentBytes+10)))
	}))
	defer server.Close()

	_, err := FetchURL(t.Context(), server.URL+"/big.txt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size limit")
}

func TestFileNameFromURL(t *testing.T) {
	for raw, want := range map[string]string{
		"https://example.com":               "example.com",
		"https://example.com/":              "example.com",
		"https://example.com:8443/a/b/c.md": "c.md",
		"https://example.com/specs/013300/": "013300",
	} {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, want, fileNameFromURL(u), raw)
	}
}
