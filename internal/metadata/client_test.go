package metadata

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(srv.URL, "test-key", 2*time.Second, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	return client
}

func TestFetchSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if got := r.URL.Query().Get("title"); got != "Paprika" {
			t.Errorf("title param = %q, want Paprika", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Paprika","posterUrl":" https://example.com/p.jpg ","releaseYear":2006,"runtimeMinutes":90}`))
	})

	meta, err := client.Fetch(context.Background(), "Paprika")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if meta.PosterURL == nil || *meta.PosterURL != "https://example.com/p.jpg" {
		t.Fatalf("poster not trimmed/parsed: %+v", meta.PosterURL)
	}
	if meta.ReleaseYear == nil || *meta.ReleaseYear != 2006 {
		t.Fatalf("release year = %+v, want 2006", meta.ReleaseYear)
	}
	if meta.RuntimeMins == nil || *meta.RuntimeMins != 90 {
		t.Fatalf("runtime = %+v, want 90", meta.RuntimeMins)
	}
}

func TestFetchNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	_, err := client.Fetch(context.Background(), "Unknown")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Fetch error = %v, want ErrNotFound", err)
	}
}

func TestFetchUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	if _, err := client.Fetch(context.Background(), "Anything"); err == nil {
		t.Fatalf("expected error for upstream 502")
	}
}

func TestConvertToMetadata_BlankPosterDropped(t *testing.T) {
	meta := convertToMetadata(apiResponse{PosterURL: strPtr("   ")})
	if meta.PosterURL != nil {
		t.Fatalf("blank poster should map to nil, got %q", *meta.PosterURL)
	}
}

func strPtr(v string) *string { return &v }
