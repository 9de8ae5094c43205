package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func BenchmarkHandleWeeklyPick(b *testing.B) {
	srv := buildTestServer(b)
	_, proposerAuthz := newMember(b, srv, "proposer")
	_, raterAuthz := newMember(b, srv, "rater")

	for i := 0; i < 16; i++ {
		movie := proposeMovie(b, srv, proposerAuthz, "Movie", i%4+1)
		if rec := rateMovie(b, srv, raterAuthz, movie.ID, (i+1)%4+1); rec.Code != http.StatusCreated {
			b.Fatalf("rate status = %d", rec.Code)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/weekly-pick", nil)
		req.Header.Set("Authorization", raterAuthz)
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
