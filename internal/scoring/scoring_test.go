package scoring

import (
	"testing"
	"time"

	"github.com/movie-night/movie-night/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		intent   int
		interest *int
		want     int
	}{
		{"unscored", 4, nil, 0},
		{"zero treated as unscored", 3, intPtr(0), 0},
		{"perfect match bonus", 4, intPtr(4), 20},
		{"mutual veto", 1, intPtr(1), -7},
		{"plain product", 3, intPtr(2), 6},
		{"veto beats enthusiasm", 4, intPtr(1), -4},
		{"high interest alone no bonus", 1, intPtr(4), 4},
		{"intent four interest three no bonus", 4, intPtr(3), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.intent, tt.interest)
			if got != tt.want {
				t.Fatalf("Score(%d, %v) = %d, want %d", tt.intent, tt.interest, got, tt.want)
			}
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	interest := intPtr(3)
	first := Score(2, interest)
	for i := 0; i < 100; i++ {
		if got := Score(2, interest); got != first {
			t.Fatalf("Score changed between calls: %d then %d", first, got)
		}
	}
}

func TestScoreUnscoredForAnyIntent(t *testing.T) {
	for intent := MinRating; intent <= MaxRating; intent++ {
		if got := Score(intent, nil); got != 0 {
			t.Fatalf("Score(%d, nil) = %d, want 0", intent, got)
		}
	}
}

func movie(title string, intent int, interest *int, watched bool) domain.Movie {
	return domain.Movie{
		Title:          title,
		ProposalIntent: intent,
		InterestScore:  interest,
		Watched:        watched,
		ProposedAt:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSelectBestPick_Empty(t *testing.T) {
	if got := SelectBestPick(nil); got != nil {
		t.Fatalf("SelectBestPick(nil) = %+v, want nil", got)
	}
	if got := SelectBestPick([]domain.Movie{}); got != nil {
		t.Fatalf("SelectBestPick([]) = %+v, want nil", got)
	}
}

func TestSelectBestPick_AllWatched(t *testing.T) {
	movies := []domain.Movie{
		movie("A", 4, intPtr(4), true),
		movie("B", 3, intPtr(3), true),
	}
	if got := SelectBestPick(movies); got != nil {
		t.Fatalf("expected nil for all-watched input, got %q", got.Title)
	}
}

func TestSelectBestPick_SkipsUnscored(t *testing.T) {
	movies := []domain.Movie{
		movie("unscored", 4, nil, false),
		movie("scored", 2, intPtr(2), false),
	}
	got := SelectBestPick(movies)
	if got == nil || got.Title != "scored" {
		t.Fatalf("SelectBestPick = %+v, want the scored movie", got)
	}
}

func TestSelectBestPick_TieKeepsFirst(t *testing.T) {
	// Both score 3*2 = 6; the earlier entry must win.
	movies := []domain.Movie{
		movie("first", 3, intPtr(2), false),
		movie("second", 2, intPtr(3), false),
	}
	got := SelectBestPick(movies)
	if got == nil || got.Title != "first" {
		t.Fatalf("tie should keep input order, got %+v", got)
	}
}

func TestSelectBestPick_NegativeScoreStillWins(t *testing.T) {
	// A vetoed movie is still the pick when it is the only eligible one.
	movies := []domain.Movie{
		movie("vetoed", 4, intPtr(1), false),
		movie("unscored", 4, nil, false),
	}
	got := SelectBestPick(movies)
	if got == nil || got.Title != "vetoed" {
		t.Fatalf("SelectBestPick = %+v, want the vetoed movie", got)
	}
}

func TestSelectBestPick_WeeklyScenario(t *testing.T) {
	a := movie("A", 4, intPtr(4), false) // 20
	b := movie("B", 2, intPtr(4), false) // 8

	got := SelectBestPick([]domain.Movie{a, b})
	if got == nil || got.Title != "A" {
		t.Fatalf("pick = %+v, want A", got)
	}

	a.Watched = true
	got = SelectBestPick([]domain.Movie{a, b})
	if got == nil || got.Title != "B" {
		t.Fatalf("pick after watching A = %+v, want B", got)
	}
}

func BenchmarkScore(b *testing.B) {
	interest := intPtr(4)
	for i := 0; i < b.N; i++ {
		Score(4, interest)
	}
}

func BenchmarkSelectBestPick(b *testing.B) {
	movies := make([]domain.Movie, 0, 64)
	for i := 0; i < 64; i++ {
		interest := i%4 + 1
		movies = append(movies, movie("m", i%4+1, &interest, i%5 == 0))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SelectBestPick(movies)
	}
}
