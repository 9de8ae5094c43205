package httpserver

import (
	"net/url"
	"testing"
)

func FuzzBuildMovieFilters(f *testing.F) {
	seeds := []string{
		"watched=false&limit=20",
		"watched=maybe",
		"limit=200",
		"cursor=eyJwcm9wb3NlZEF0IjoiMjAyNC0wMy0wMVQwMDowMDowMFoiLCJpZCI6ImFiYyJ9",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		_, _ = buildMovieFilters(values)
	})
}
