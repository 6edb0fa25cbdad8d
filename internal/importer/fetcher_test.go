package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	require.Error(t, err)
	var impErr *Error
	require.True(t, errors.As(err, &impErr), "expected *importer.Error, got %T", err)
	assert.Equal(t, kind, impErr.Kind)
	assert.NotEmpty(t, impErr.Message)
	return impErr
}

func TestFetcherSchemeValidation(t *testing.T) {
	f := NewFetcher(0, 0)

	for _, bad := range []string{
		"file:///etc/passwd",
		"ftp://example.com/recipe",
		"javascript:alert(1)",
		"not a url at all",
		"",
	} {
		t.Run(bad, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), bad)
			assertKind(t, err, ErrInvalidURL)
		})
	}
}

func TestFetcherSuccess(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	doc, err := NewFetcher(0, 0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, doc.URL)
	assert.Contains(t, doc.ContentType, "text/html")
	assert.Contains(t, string(doc.Body), "hello")
	assert.Contains(t, gotUA, "Mozilla")
	assert.Contains(t, gotAccept, "text/html")
}

func TestFetcherStatusMapping(t *testing.T) {
	t.Run("404 yields NotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		_, err := NewFetcher(0, 0).Fetch(context.Background(), srv.URL)
		impErr := assertKind(t, err, ErrNotFound)
		assert.False(t, impErr.Retryable())
	})

	t.Run("500 yields RemoteError with status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewFetcher(0, 0).Fetch(context.Background(), srv.URL)
		impErr := assertKind(t, err, ErrRemote)
		assert.Equal(t, http.StatusInternalServerError, impErr.StatusCode)
		assert.True(t, impErr.Retryable())
	})
}

func TestFetcherPayloadCap(t *testing.T) {
	// Serve far more than the cap; the fetcher must stop reading at the
	// limit instead of buffering the whole stream.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chunk := []byte(strings.Repeat("x", 1024))
		for i := 0; i < 64; i++ {
			w.Write(chunk)
		}
	}))
	defer srv.Close()

	_, err := NewFetcher(0, 16*1024).Fetch(context.Background(), srv.URL)
	assertKind(t, err, ErrPayloadTooLarge)
}

func TestFetcherTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewFetcher(50*time.Millisecond, 0).Fetch(context.Background(), srv.URL)
	impErr := assertKind(t, err, ErrTimeout)
	assert.True(t, impErr.Retryable())
}

func TestFetcherUnreachable(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(0, 0).Fetch(context.Background(), url)
	impErr := assertKind(t, err, ErrNetworkUnreachable)
	assert.True(t, impErr.Retryable())
}
