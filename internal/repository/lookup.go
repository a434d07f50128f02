package repository

import (
	"context"
	"fmt"
	"time"
	"warzone-tracker/internal/db"
	"warzone-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type LookupRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewLookupRepository(queries *db.Queries, logger zerolog.Logger) *LookupRepository {
	return &LookupRepository{
		queries: queries,
		logger:  logger,
	}
}

// Insert stores the lookup, assigning an ID and creation time when unset.
func (r *LookupRepository) Insert(ctx context.Context, lookup *domain.Lookup) error {
	if lookup.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate lookup id: %w", err)
		}
		lookup.ID = id
	}
	if lookup.CreatedAt.IsZero() {
		lookup.CreatedAt = time.Now().UTC()
	}

	err := r.queries.InsertLookup(ctx, db.InsertLookupParams{
		ID:           lookup.ID,
		PlayerName:   lookup.PlayerName,
		Platform:     lookup.Platform,
		Kind:         string(lookup.Kind),
		RangeStart:   lookup.RangeStart,
		RangeEnd:     lookup.RangeEnd,
		Outcome:      string(lookup.Outcome),
		Status:       int64(lookup.Status),
		MatchCount:   int64(lookup.MatchCount),
		ErrorMessage: lookup.ErrorMessage,
		DurationMs:   lookup.Duration.Milliseconds(),
		CreatedAt:    lookup.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert lookup %s: %w", lookup.ID, err)
	}
	return nil
}

func (r *LookupRepository) ListRecent(ctx context.Context, limit int) ([]domain.Lookup, error) {
	rows, err := r.queries.ListRecentLookups(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	return toLookups(rows), nil
}

// ListByPlayer returns the player's lookups, across every platform when
// platform is empty.
func (r *LookupRepository) ListByPlayer(ctx context.Context, playerName, platform string, limit int) ([]domain.Lookup, error) {
	var (
		rows []db.Lookup
		err  error
	)
	if platform == "" {
		rows, err = r.queries.ListLookupsByPlayerName(ctx, db.ListLookupsByPlayerNameParams{
			PlayerName: playerName,
			Limit:      int64(limit),
		})
	} else {
		rows, err = r.queries.ListLookupsByPlayer(ctx, db.ListLookupsByPlayerParams{
			PlayerName: playerName,
			Platform:   platform,
			Limit:      int64(limit),
		})
	}
	if err != nil {
		return nil, err
	}
	return toLookups(rows), nil
}

func toLookups(rows []db.Lookup) []domain.Lookup {
	results := make([]domain.Lookup, len(rows))
	for i, row := range rows {
		results[i] = domain.Lookup{
			ID:           row.ID,
			PlayerName:   row.PlayerName,
			Platform:     row.Platform,
			Kind:         domain.LookupKind(row.Kind),
			RangeStart:   row.RangeStart,
			RangeEnd:     row.RangeEnd,
			Outcome:      domain.Outcome(row.Outcome),
			Status:       int(row.Status),
			MatchCount:   int(row.MatchCount),
			ErrorMessage: row.ErrorMessage,
			Duration:     time.Duration(row.DurationMs) * time.Millisecond,
			CreatedAt:    row.CreatedAt,
		}
	}
	return results
}
