package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/movie-night/movie-night/internal/domain"
)

func newRequestWithIDParam(t *testing.T, id string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/movies/"+id+"/rating", nil)
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func testMovie() domain.Movie {
	return domain.Movie{
		ID:             "3a1f1c2e-0000-4000-8000-000000000001",
		Title:          "Paprika",
		ProposerID:     "3a1f1c2e-0000-4000-8000-000000000002",
		ProposalIntent: 4,
		ProposedAt:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeStringPtr(t *testing.T) {
	if got := normalizeStringPtr(nil); got != nil {
		t.Fatalf("nil input should stay nil")
	}

	blank := "   "
	if got := normalizeStringPtr(&blank); got != nil {
		t.Fatalf("blank input should map to nil, got %q", *got)
	}

	padded := "  fun night  "
	got := normalizeStringPtr(&padded)
	if got == nil || *got != "fun night" {
		t.Fatalf("normalizeStringPtr(%q) = %v, want %q", padded, got, "fun night")
	}
}

func TestToMovieResponseCarriesOptionalFields(t *testing.T) {
	score := 3
	movie := testMovie()
	movie.InterestScore = &score

	resp := toMovieResponse(movie)
	if resp.InterestScore == nil || *resp.InterestScore != 3 {
		t.Fatalf("interest score lost in mapping: %+v", resp.InterestScore)
	}
	if resp.Watched {
		t.Fatalf("unwatched movie mapped as watched")
	}
}
