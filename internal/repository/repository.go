package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movie-night/movie-night/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicate indicates a uniqueness violation, e.g. a username or email
// that is already taken.
var ErrDuplicate = errors.New("repository: duplicate")

// ErrAlreadyWatched indicates a movie was already marked watched; the
// watched flag is terminal and never cleared.
var ErrAlreadyWatched = errors.New("repository: already watched")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Users  *UsersRepository
	Movies *MoviesRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Users:  &UsersRepository{pool: pool},
		Movies: &MoviesRepository{pool: pool},
	}
}
