package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movie-night/movie-night/internal/domain"
)

// MoviesRepository provides persistence helpers for proposed movies.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
    id,
    title,
    proposer_id,
    proposal_intent,
    interest_score,
    proposed_at,
    watched,
    watched_at,
    notes,
    metadata,
    created_at,
    updated_at
`

// MovieCreateParams bundles the fields required to propose a movie.
type MovieCreateParams struct {
	Title          string
	ProposerID     string
	ProposalIntent int
}

// MovieListFilters encapsulates list options.
type MovieListFilters struct {
	Watched *bool
	Limit   int
	Cursor  *MovieCursor
}

// MovieCursor allows stable pagination by proposed_at/id.
type MovieCursor struct {
	ProposedAt time.Time `json:"proposedAt"`
	ID         string    `json:"id"`
}

// MovieListResult returns the paginated payload.
type MovieListResult struct {
	Items      []domain.Movie
	NextCursor *string
}

// Create inserts a new proposal and returns the stored entity.
func (r *MoviesRepository) Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error) {
	query := fmt.Sprintf(`
        INSERT INTO movies (title, proposer_id, proposal_intent)
        VALUES ($1,$2,$3)
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query, params.Title, params.ProposerID, params.ProposalIntent)
	return scanMovie(row)
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id string) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// SetInterestScore patches the interest score of a movie. The latest score
// wins; there is no averaging across raters.
func (r *MoviesRepository) SetInterestScore(ctx context.Context, id string, score int) (domain.Movie, error) {
	query := fmt.Sprintf(`
        UPDATE movies
        SET interest_score = $2, updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, movieColumns)

	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id, score))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// MarkWatched flips the terminal watched flag, stamps watched_at, and stores
// the optional notes. A second attempt returns ErrAlreadyWatched.
func (r *MoviesRepository) MarkWatched(ctx context.Context, id string, notes *string) (domain.Movie, error) {
	query := fmt.Sprintf(`
        UPDATE movies
        SET watched = TRUE, watched_at = now(), notes = $2, updated_at = now()
        WHERE id = $1 AND watched = FALSE
        RETURNING %s
    `, movieColumns)

	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id, notes))
	if err == nil {
		return movie, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Movie{}, err
	}

	// Either the movie does not exist or it is already watched.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return domain.Movie{}, getErr
	}
	return domain.Movie{}, ErrAlreadyWatched
}

// UpdateMetadata stores the enrichment payload fetched from the metadata
// upstream. Passing nil clears nothing and is a no-op.
func (r *MoviesRepository) UpdateMetadata(ctx context.Context, id string, metadata *domain.Metadata) (domain.Movie, error) {
	if metadata == nil {
		return r.GetByID(ctx, id)
	}

	payload, err := json.Marshal(metadata)
	if err != nil {
		return domain.Movie{}, err
	}

	query := fmt.Sprintf(`
        UPDATE movies
        SET metadata = $2, updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, movieColumns)

	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id, payload))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// List returns movies ordered by proposed_at descending, optionally filtered
// by the watched flag, with cursor pagination.
func (r *MoviesRepository) List(ctx context.Context, filters MovieListFilters) (MovieListResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = 20
	} else if filters.Limit > 100 {
		filters.Limit = 100
	}

	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Watched != nil {
		where = append(where, fmt.Sprintf("watched = %s", arg(*filters.Watched)))
	}
	if filters.Cursor != nil {
		cursorProposed := arg(filters.Cursor.ProposedAt)
		cursorID := arg(filters.Cursor.ID)
		where = append(where, fmt.Sprintf("(proposed_at, id) < (%s, %s)", cursorProposed, cursorID))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(movieColumns)
	queryBuilder.WriteString(" FROM movies")
	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY proposed_at DESC, id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT %d", filters.Limit))

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return MovieListResult{}, err
	}
	defer rows.Close()

	items := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return MovieListResult{}, err
		}
		items = append(items, movie)
	}
	if err := rows.Err(); err != nil {
		return MovieListResult{}, err
	}

	var nextCursor *string
	if len(items) == filters.Limit {
		last := items[len(items)-1]
		token, err := encodeCursor(MovieCursor{ProposedAt: last.ProposedAt, ID: last.ID})
		if err != nil {
			return MovieListResult{}, err
		}
		nextCursor = &token
	}

	return MovieListResult{Items: items, NextCursor: nextCursor}, nil
}

// ListUnwatched returns every unwatched movie ordered by proposed_at
// descending. The weekly pick feeds this order straight into the selector,
// so ties between equal scores go to the most recently proposed movie.
func (r *MoviesRepository) ListUnwatched(ctx context.Context) ([]domain.Movie, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM movies
        WHERE watched = FALSE
        ORDER BY proposed_at DESC, id DESC
    `, movieColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var (
		movie         domain.Movie
		interestScore *int16
		metadataJSON  []byte
	)

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.ProposerID,
		&movie.ProposalIntent,
		&interestScore,
		&movie.ProposedAt,
		&movie.Watched,
		&movie.WatchedAt,
		&movie.Notes,
		&metadataJSON,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return domain.Movie{}, err
	}

	if interestScore != nil {
		score := int(*interestScore)
		movie.InterestScore = &score
	}
	if len(metadataJSON) > 0 {
		var meta domain.Metadata
		if err := json.Unmarshal(metadataJSON, &meta); err != nil {
			return domain.Movie{}, err
		}
		movie.Metadata = &meta
	}

	return movie, nil
}

func encodeCursor(c MovieCursor) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecodeCursor parses a cursor token into a MovieCursor.
func DecodeCursor(token string) (*MovieCursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}
	var cursor MovieCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor payload: %w", err)
	}
	return &cursor, nil
}
