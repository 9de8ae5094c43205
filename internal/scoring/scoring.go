// Package scoring implements the movie-night desirability score and the
// weekly pick selection. Both functions are pure and safe for concurrent use.
package scoring

import "github.com/movie-night/movie-night/internal/domain"

// Rating bounds shared by proposal intent and interest score.
const (
	MinRating = 1
	MaxRating = 4
)

const (
	// perfectMatchBonus lifts a 4x4 mutual match above every other
	// combination so "both maximally enthusiastic" always wins outright.
	perfectMatchBonus = 4

	// vetoPenalty sinks any movie the rater scored 1, no matter how
	// enthusiastic the proposer was. The result may go negative.
	vetoPenalty = 8
)

// ValidRating reports whether value is an acceptable intent or interest score.
func ValidRating(value int) bool {
	return value >= MinRating && value <= MaxRating
}

// Score computes the desirability of a movie from the proposer's intent and
// the rater's interest. An absent (nil) or zero interest score yields 0.
// Both values must lie in [MinRating, MaxRating] when present; callers
// validate at the boundary, Score does not clamp.
func Score(proposalIntent int, interestScore *int) int {
	if interestScore == nil || *interestScore == 0 {
		return 0
	}
	value := proposalIntent * *interestScore
	if proposalIntent == MaxRating && *interestScore == MaxRating {
		value += perfectMatchBonus
	}
	if *interestScore == MinRating {
		value -= vetoPenalty
	}
	return value
}

// SelectBestPick returns the unwatched, scored movie with the highest score,
// or nil when no movie is eligible. Equal scores keep the earliest movie in
// the input order, so the caller's ordering decides ties.
func SelectBestPick(movies []domain.Movie) *domain.Movie {
	var best *domain.Movie
	bestScore := 0
	for i := range movies {
		m := &movies[i]
		if m.Watched || m.InterestScore == nil {
			continue
		}
		s := Score(m.ProposalIntent, m.InterestScore)
		if best == nil || s > bestScore {
			best = m
			bestScore = s
		}
	}
	return best
}
