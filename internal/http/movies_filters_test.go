package httpserver

import (
	"net/url"
	"testing"
)

func TestBuildMovieFilters(t *testing.T) {
	values, _ := url.ParseQuery("watched=false&limit=50")

	filters, err := buildMovieFilters(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.Watched == nil || *filters.Watched != false {
		t.Fatalf("watched parse failed: %+v", filters.Watched)
	}
	if filters.Limit != 50 {
		t.Fatalf("limit not parsed: %d", filters.Limit)
	}
	if filters.Cursor != nil {
		t.Fatalf("cursor should default nil")
	}
}

func TestBuildMovieFilters_Invalid(t *testing.T) {
	cases := []string{
		"watched=maybe",
		"limit=abc",
		"cursor=@@not-base64@@",
	}
	for _, raw := range cases {
		values, _ := url.ParseQuery(raw)
		if _, err := buildMovieFilters(values); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestDecodeIDParamRejectsGarbage(t *testing.T) {
	// Routed requests carry the id in chi's route context; decodeIDParam
	// must reject anything that is not a UUID.
	req := newRequestWithIDParam(t, "definitely-not-a-uuid")
	if _, err := decodeIDParam(req); err == nil {
		t.Fatalf("expected error for malformed id")
	}
}
