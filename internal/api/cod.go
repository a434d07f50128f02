package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"warzone-tracker/internal/config"
	"warzone-tracker/pkg/models"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const matchesPath = "/api/papi-client/crm/cod/v2/title/mw/platform/%s/gamer/%s/matches/wz/start/%d/end/%d/details"

// CodClient fetches Warzone match history with the session's credentials.
type CodClient struct {
	transport *Transport
	session   *Session
	apiURL    string
	logger    zerolog.Logger
}

func NewCodClient(cfg *config.Config, transport *Transport, session *Session, logger zerolog.Logger) *CodClient {
	return &CodClient{
		transport: transport,
		session:   session,
		apiURL:    cfg.APIURL,
		logger:    logger,
	}
}

// RecentMatches returns the last twenty Warzone matches.
func (c *CodClient) RecentMatches(ctx context.Context, playerName, platform string) Result[models.Summaries] {
	return c.matches(ctx, playerName, platform, 0, 0)
}

// MatchesInRange returns matches between start and end; a nil bound is open.
func (c *CodClient) MatchesInRange(ctx context.Context, playerName, platform string, start, end *time.Time) Result[models.Summaries] {
	return c.matches(ctx, playerName, platform, unixMillis(start), unixMillis(end))
}

func (c *CodClient) matches(ctx context.Context, playerName, platform string, start, end int64) Result[models.Summaries] {
	u := c.apiURL + fmt.Sprintf(matchesPath,
		url.PathEscape(models.ParsePlatform(platform).String()),
		url.PathEscape(playerName),
		start, end)

	c.logger.Debug().
		Str("player_name", playerName).
		Str("platform", platform).
		Int64("start", start).
		Int64("end", end).
		Msg("fetching matches")

	res := getJSON[models.Summaries](ctx, c, u)
	if !res.Success {
		c.logger.Warn().
			Str("player_name", playerName).
			Str("platform", platform).
			Int("status", res.Status).
			Str("error", res.Error.Error()).
			Msg("match fetch failed")
	}
	return res
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type envelopeError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func getJSON[T any](ctx context.Context, c *CodClient, u string) Result[T] {
	tokens := c.session.Tokens()
	headers := map[string]string{"Accept": "application/json"}
	if tokens.SSO != "" {
		headers["Authorization"] = "Bearer " + tokens.SSO
	}

	rep, err := c.transport.Do(ctx, exchange{
		method:  fasthttp.MethodGet,
		url:     u,
		headers: headers,
		cookies: tokens.Cookies(),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return failed[T](0, "request cancelled", err)
		}
		return failed[T](0, fmt.Sprintf("request failed: %v", err), err)
	}

	if rep.status == fasthttp.StatusUnauthorized {
		return failed[T](rep.status, "unauthorized", nil)
	}
	if rep.status < fasthttp.StatusOK || rep.status >= fasthttp.StatusMultipleChoices {
		return failed[T](rep.status, fmt.Sprintf("API error: %d", rep.status), nil)
	}

	var env envelope
	if err := json.Unmarshal(rep.body, &env); err != nil {
		return failed[T](rep.status, fmt.Sprintf("malformed response: %v", err), err)
	}

	if env.Status != "success" {
		var upstreamErr envelopeError
		_ = json.Unmarshal(env.Data, &upstreamErr)
		msg := upstreamErr.Message
		if msg == "" {
			msg = fmt.Sprintf("upstream status %q", env.Status)
		}
		status := rep.status
		if strings.Contains(strings.ToLower(msg), "not authenticated") {
			status = fasthttp.StatusUnauthorized
		}
		return failed[T](status, msg, nil)
	}

	var data T
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return failed[T](rep.status, fmt.Sprintf("malformed payload: %v", err), err)
	}
	return succeeded(rep.status, &data)
}

func unixMillis(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}
