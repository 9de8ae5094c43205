package domain

import "time"

// Metadata captures optional enrichment fetched from the movie metadata
// upstream after a proposal is created.
type Metadata struct {
	PosterURL   *string `json:"posterUrl,omitempty"`
	ReleaseYear *int    `json:"releaseYear,omitempty"`
	RuntimeMins *int    `json:"runtimeMinutes,omitempty"`
}

// Movie represents a proposed movie participating in scoring and selection.
//
// ProposalIntent is the proposer's own enthusiasm (1-4), fixed at creation.
// InterestScore is a different member's enthusiasm (1-4); nil means the
// movie has not been scored yet and is ineligible for the weekly pick.
// Watched is terminal: once set, the movie never re-enters selection.
type Movie struct {
	ID             string
	Title          string
	ProposerID     string
	ProposalIntent int
	InterestScore  *int
	ProposedAt     time.Time
	Watched        bool
	WatchedAt      *time.Time
	Notes          *string
	Metadata       *Metadata
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
