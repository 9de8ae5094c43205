package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/movie-night/movie-night/internal/domain"
	"github.com/movie-night/movie-night/internal/metadata"
	"github.com/movie-night/movie-night/internal/repository"
	"github.com/movie-night/movie-night/internal/scoring"
)

type movieProposeRequest struct {
	Title          string `json:"title"`
	ProposalIntent int    `json:"proposalIntent"`
}

type movieRateRequest struct {
	InterestScore int `json:"interestScore"`
}

type movieWatchedRequest struct {
	Notes *string `json:"notes"`
}

type movieListResponse struct {
	Items      []movieResponse `json:"items"`
	NextCursor *string         `json:"nextCursor,omitempty"`
}

type movieResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	ProposerID     string           `json:"proposerId"`
	ProposalIntent int              `json:"proposalIntent"`
	InterestScore  *int             `json:"interestScore,omitempty"`
	ProposedAt     time.Time        `json:"proposedAt"`
	Watched        bool             `json:"watched"`
	WatchedAt      *time.Time       `json:"watchedAt,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	Metadata       *domain.Metadata `json:"metadata,omitempty"`
}

type weeklyPickResponse struct {
	Movie movieResponse `json:"movie"`
	Score int           `json:"score"`
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	// Reads never fail for anonymous callers; they just see nothing.
	if s.auth.ResolveIdentity(r.Header.Get("Authorization")) == nil {
		s.respondJSON(w, http.StatusOK, movieListResponse{Items: []movieResponse{}})
		return
	}

	filters, err := buildMovieFilters(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result, err := s.repo.Movies.List(r.Context(), filters)
	if err != nil {
		s.logger.Printf("list movies error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
		return
	}

	items := make([]movieResponse, 0, len(result.Items))
	for _, movie := range result.Items {
		items = append(items, toMovieResponse(movie))
	}

	s.respondJSON(w, http.StatusOK, movieListResponse{
		Items:      items,
		NextCursor: result.NextCursor,
	})
}

func buildMovieFilters(query url.Values) (repository.MovieListFilters, error) {
	var filters repository.MovieListFilters

	if val := strings.TrimSpace(query.Get("watched")); val != "" {
		watched, err := strconv.ParseBool(val)
		if err != nil {
			return filters, fmt.Errorf("invalid watched value")
		}
		filters.Watched = &watched
	}
	if val := strings.TrimSpace(query.Get("limit")); val != "" {
		limit, err := strconv.Atoi(val)
		if err != nil {
			return filters, fmt.Errorf("invalid limit value")
		}
		filters.Limit = limit
	}
	if val := strings.TrimSpace(query.Get("cursor")); val != "" {
		cursor, err := repository.DecodeCursor(val)
		if err != nil {
			return filters, fmt.Errorf("invalid cursor")
		}
		filters.Cursor = cursor
	}
	return filters, nil
}

func (s *Server) handleProposeMovie(w http.ResponseWriter, r *http.Request) {
	identity := s.auth.ResolveIdentity(r.Header.Get("Authorization"))
	if identity == nil {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req movieProposeRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required")
		return
	}
	if !scoring.ValidRating(req.ProposalIntent) {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			fmt.Sprintf("proposalIntent must be an integer in [%d,%d]", scoring.MinRating, scoring.MaxRating))
		return
	}

	movie, err := s.repo.Movies.Create(r.Context(), repository.MovieCreateParams{
		Title:          title,
		ProposerID:     identity.String(),
		ProposalIntent: req.ProposalIntent,
	})
	if err != nil {
		s.logger.Printf("propose movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to propose movie")
		return
	}

	movie = s.enrichMovieMetadata(r.Context(), movie)
	s.cache.InvalidateWeeklyPick(r.Context(), time.Now())

	w.Header().Set("Location", fmt.Sprintf("/movies/%s", movie.ID))
	s.respondJSON(w, http.StatusCreated, toMovieResponse(movie))
}

// enrichMovieMetadata is best-effort: a missing client, an unknown title, or
// an upstream failure all leave the proposal as-is.
func (s *Server) enrichMovieMetadata(ctx context.Context, movie domain.Movie) domain.Movie {
	if s.metadata == nil {
		return movie
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.MetadataTimeoutSecs)*time.Second)
	defer cancel()

	meta, err := s.metadata.Fetch(ctx, movie.Title)
	if err != nil {
		if !errors.Is(err, metadata.ErrNotFound) {
			s.logger.Printf("metadata fetch failed for %s: %v", movie.Title, err)
		}
		return movie
	}

	updated, err := s.repo.Movies.UpdateMetadata(ctx, movie.ID, meta)
	if err != nil {
		s.logger.Printf("update movie metadata failed: %v", err)
		return movie
	}
	return updated
}

func (s *Server) handleRateMovie(w http.ResponseWriter, r *http.Request) {
	identity := s.auth.ResolveIdentity(r.Header.Get("Authorization"))
	if identity == nil {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("fetch movie for rating failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process rating")
		return
	}

	if movie.ProposerID == identity.String() {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "proposers cannot rate their own proposal")
		return
	}

	var req movieRateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if !scoring.ValidRating(req.InterestScore) {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			fmt.Sprintf("interestScore must be an integer in [%d,%d]", scoring.MinRating, scoring.MaxRating))
		return
	}

	firstScore := movie.InterestScore == nil
	updated, err := s.repo.Movies.SetInterestScore(r.Context(), movie.ID, req.InterestScore)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("set interest score error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process rating")
		return
	}

	s.cache.InvalidateWeeklyPick(r.Context(), time.Now())

	status := http.StatusOK
	if firstScore {
		status = http.StatusCreated
	}
	s.respondJSON(w, status, toMovieResponse(updated))
}

func (s *Server) handleMarkWatched(w http.ResponseWriter, r *http.Request) {
	identity := s.auth.ResolveIdentity(r.Header.Get("Authorization"))
	if identity == nil {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	// An empty body is allowed: notes are optional at watch time.
	var req movieWatchedRequest
	if err := decodeJSONBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.respondDecodeError(w, err)
		return
	}

	movie, err := s.repo.Movies.MarkWatched(r.Context(), id, normalizeStringPtr(req.Notes))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		case errors.Is(err, repository.ErrAlreadyWatched):
			s.respondError(w, http.StatusConflict, "CONFLICT", "movie is already marked watched")
		default:
			s.logger.Printf("mark watched error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark watched")
		}
		return
	}

	s.cache.InvalidateWeeklyPick(r.Context(), time.Now())
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleWeeklyPick(w http.ResponseWriter, r *http.Request) {
	// Anonymous callers get an empty pick rather than an error.
	if s.auth.ResolveIdentity(r.Header.Get("Authorization")) == nil {
		s.respondJSON(w, http.StatusOK, json.RawMessage("null"))
		return
	}

	now := time.Now()
	if payload, ok := s.cache.GetWeeklyPick(r.Context(), now); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}

	candidates, err := s.repo.Movies.ListUnwatched(r.Context())
	if err != nil {
		s.logger.Printf("list unwatched error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute weekly pick")
		return
	}

	pick := scoring.SelectBestPick(candidates)
	if pick == nil {
		s.respondJSON(w, http.StatusOK, json.RawMessage("null"))
		return
	}

	resp := weeklyPickResponse{
		Movie: toMovieResponse(*pick),
		Score: scoring.Score(pick.ProposalIntent, pick.InterestScore),
	}
	if payload, err := json.Marshal(resp); err == nil {
		s.cache.SetWeeklyPick(r.Context(), now, payload)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func toMovieResponse(movie domain.Movie) movieResponse {
	return movieResponse{
		ID:             movie.ID,
		Title:          movie.Title,
		ProposerID:     movie.ProposerID,
		ProposalIntent: movie.ProposalIntent,
		InterestScore:  movie.InterestScore,
		ProposedAt:     movie.ProposedAt,
		Watched:        movie.Watched,
		WatchedAt:      movie.WatchedAt,
		Notes:          movie.Notes,
		Metadata:       movie.Metadata,
	}
}

func normalizeStringPtr(ptr *string) *string {
	if ptr == nil {
		return nil
	}
	val := strings.TrimSpace(*ptr)
	if val == "" {
		return nil
	}
	return &val
}

func decodeIDParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return "", fmt.Errorf("missing id parameter")
	}
	id, err := parseUUID(raw)
	if err != nil {
		return "", fmt.Errorf("invalid id parameter")
	}
	return id.String(), nil
}

func parseUUID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}
