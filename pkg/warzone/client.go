// Package warzone is the entry point for querying Warzone match history: it
// gates queries on an authenticated session and turns upstream results into
// a Response or one of the package's errors.
package warzone

import (
	"context"
	"fmt"
	"strings"
	"time"
	"warzone-tracker/internal/api"
	"warzone-tracker/pkg/models"

	"github.com/rs/zerolog"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) bool
	IsLoggedIn() bool
	Invalidate()
}

type MatchFetcher interface {
	RecentMatches(ctx context.Context, playerName, platform string) api.Result[models.Summaries]
	MatchesInRange(ctx context.Context, playerName, platform string, start, end *time.Time) api.Result[models.Summaries]
}

// Response is what callers get back from a match query. ErrorMessage is only
// set alongside an UpstreamError.
type Response[T any] struct {
	Data         *T     `json:"data,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type Client struct {
	auth    Authenticator
	matches MatchFetcher
	logger  zerolog.Logger
}

func New(auth Authenticator, matches MatchFetcher, logger zerolog.Logger) *Client {
	return &Client{auth: auth, matches: matches, logger: logger}
}

func (c *Client) Login(ctx context.Context, email, password string) bool {
	return c.auth.Login(ctx, email, password)
}

func (c *Client) IsLoggedIn() bool {
	return c.auth.IsLoggedIn()
}

// GetRecentMatches returns the player's last twenty Warzone matches.
func (c *Client) GetRecentMatches(ctx context.Context, playerName, platform string) (*Response[models.Summaries], error) {
	if !c.auth.IsLoggedIn() {
		return nil, ErrNotAuthenticated
	}
	if err := validate(playerName, platform, nil, nil); err != nil {
		return nil, err
	}

	res := c.matches.RecentMatches(ctx, playerName, platform)
	return c.check(res, playerName, platform)
}

// GetMatchesInRange returns the player's matches between start and end.
// Either bound may be nil.
func (c *Client) GetMatchesInRange(ctx context.Context, playerName, platform string, start, end *time.Time) (*Response[models.Summaries], error) {
	if !c.auth.IsLoggedIn() {
		return nil, ErrNotAuthenticated
	}
	if err := validate(playerName, platform, start, end); err != nil {
		return nil, err
	}

	res := c.matches.MatchesInRange(ctx, playerName, platform, start, end)
	return c.check(res, playerName, platform)
}

func (c *Client) check(res api.Result[models.Summaries], playerName, platform string) (*Response[models.Summaries], error) {
	switch {
	case res.Success:
		return &Response[models.Summaries]{Data: res.Data}, nil
	case res.Unauthorized():
		c.logger.Warn().Str("player_name", playerName).Str("platform", platform).Msg("upstream rejected session")
		c.auth.Invalidate()
		return nil, ErrNotAuthenticated
	case res.Cancelled():
		return nil, fmt.Errorf("%w: %w", ErrCancelled, res.Error.Cause)
	}

	msg := "unknown upstream error"
	if res.Error != nil {
		msg = res.Error.Error()
	}
	return &Response[models.Summaries]{ErrorMessage: msg}, &UpstreamError{Status: res.Status, Message: msg}
}

func validate(playerName, platform string, start, end *time.Time) error {
	if strings.TrimSpace(playerName) == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidQuery)
	}
	if strings.TrimSpace(platform) == "" {
		return fmt.Errorf("%w: platform is required", ErrInvalidQuery)
	}
	if start != nil && end != nil && start.After(*end) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidQuery, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}
