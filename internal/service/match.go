package service

import (
	"context"
	"errors"
	"sync"
	"time"
	"warzone-tracker/internal/constants"
	"warzone-tracker/internal/domain"
	"warzone-tracker/internal/repository"
	"warzone-tracker/pkg/models"
	"warzone-tracker/pkg/warzone"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type MatchService struct {
	client  *warzone.Client
	lookups *repository.LookupRepository
	logger  zerolog.Logger

	mu       sync.Mutex
	recorder *errgroup.Group
}

func NewMatchService(client *warzone.Client, lookups *repository.LookupRepository, logger zerolog.Logger) *MatchService {
	return &MatchService{
		client:   client,
		lookups:  lookups,
		logger:   logger,
		recorder: new(errgroup.Group),
	}
}

func (s *MatchService) GetRecentMatches(ctx context.Context, playerName, platform string) (*warzone.Response[models.Summaries], error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Str("player_name", playerName).Str("platform", platform).Msg("getting recent matches")

	start := time.Now()
	resp, err := s.client.GetRecentMatches(ctx, playerName, platform)
	s.record(domain.Lookup{
		PlayerName: playerName,
		Platform:   models.ParsePlatform(platform).String(),
		Kind:       domain.LookupRecent,
	}, resp, err, time.Since(start))

	return resp, err
}

func (s *MatchService) GetMatchesInRange(ctx context.Context, playerName, platform string, from, to *time.Time) (*warzone.Response[models.Summaries], error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().
		Str("player_name", playerName).
		Str("platform", platform).
		Any("start", from).
		Any("end", to).
		Msg("getting matches in range")

	start := time.Now()
	resp, err := s.client.GetMatchesInRange(ctx, playerName, platform, from, to)
	s.record(domain.Lookup{
		PlayerName: playerName,
		Platform:   models.ParsePlatform(platform).String(),
		Kind:       domain.LookupRange,
		RangeStart: utc(from),
		RangeEnd:   utc(to),
	}, resp, err, time.Since(start))

	return resp, err
}

func (s *MatchService) RecentLookups(ctx context.Context, limit int) ([]domain.Lookup, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.lookups.ListRecent(ctx, clampLimit(limit))
}

func (s *MatchService) PlayerLookups(ctx context.Context, playerName, platform string, limit int) ([]domain.Lookup, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.lookups.ListByPlayer(ctx, playerName, models.ParsePlatform(platform).String(), clampLimit(limit))
}

// Flush waits for lookup writes started so far and returns the first failure.
func (s *MatchService) Flush() error {
	s.mu.Lock()
	g := s.recorder
	s.recorder = new(errgroup.Group)
	s.mu.Unlock()

	return g.Wait()
}

// record stores the lookup off the request path; a failed write is logged
// and never affects the caller's result.
func (s *MatchService) record(lookup domain.Lookup, resp *warzone.Response[models.Summaries], err error, took time.Duration) {
	lookup.Outcome, lookup.Status = outcomeOf(err)
	lookup.Duration = took
	if resp != nil {
		if resp.Data != nil {
			lookup.MatchCount = len(resp.Data.Matches)
		}
		lookup.ErrorMessage = resp.ErrorMessage
	}
	if err != nil && lookup.ErrorMessage == "" {
		lookup.ErrorMessage = err.Error()
	}

	s.logger.Debug().
		Str("player_name", lookup.PlayerName).
		Str("outcome", string(lookup.Outcome)).
		Int("match_count", lookup.MatchCount).
		Dur("duration", took).
		Msg("recording lookup")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder.Go(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
		defer cancel()

		if err := s.lookups.Insert(ctx, &lookup); err != nil {
			s.logger.Warn().Err(err).Str("player_name", lookup.PlayerName).Msg("failed to record lookup")
			return err
		}
		return nil
	})
}

func outcomeOf(err error) (domain.Outcome, int) {
	var upstreamErr *warzone.UpstreamError
	switch {
	case err == nil:
		return domain.OutcomeOK, 200
	case errors.Is(err, warzone.ErrNotAuthenticated):
		return domain.OutcomeUnauthenticated, 0
	case errors.Is(err, warzone.ErrCancelled):
		return domain.OutcomeCancelled, 0
	case errors.Is(err, warzone.ErrInvalidQuery):
		return domain.OutcomeInvalid, 0
	case errors.As(err, &upstreamErr):
		return domain.OutcomeUpstreamError, upstreamErr.Status
	default:
		return domain.OutcomeUpstreamError, 0
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return constants.LookupListDefault
	}
	if limit > constants.LookupListMax {
		return constants.LookupListMax
	}
	return limit
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
