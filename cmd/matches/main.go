// Command matches logs in with COD_EMAIL/COD_PASSWORD and prints a player's
// Warzone matches as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"warzone-tracker/internal/config"
	fxmodules "warzone-tracker/internal/fx"
	"warzone-tracker/pkg/models"
	"warzone-tracker/pkg/warzone"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	player := flag.String("player", "", "gamertag, e.g. Player#1234")
	platform := flag.String("platform", "battle", "battle, psn, xbl, steam, uno or acti")
	start := flag.String("start", "", "range start (RFC3339)")
	end := flag.String("end", "", "range end (RFC3339)")
	flag.Parse()

	var (
		client *warzone.Client
		cfg    *config.Config
		logger zerolog.Logger
	)
	app := fx.New(fxmodules.ClientModule, fx.NopLogger, fx.Populate(&client, &cfg, &logger))
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, client, cfg, logger, *player, *platform, *start, *end))
}

func run(ctx context.Context, client *warzone.Client, cfg *config.Config, logger zerolog.Logger, player, platform, start, end string) int {
	from, err := parseFlagTime(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -start: %v\n", err)
		return 2
	}
	to, err := parseFlagTime(end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -end: %v\n", err)
		return 2
	}

	if !client.Login(ctx, cfg.CodEmail, cfg.CodPassword) {
		fmt.Fprintln(os.Stderr, "login failed, check COD_EMAIL and COD_PASSWORD")
		return 1
	}

	var resp *warzone.Response[models.Summaries]
	if from == nil && to == nil {
		resp, err = client.GetRecentMatches(ctx, player, platform)
	} else {
		resp, err = client.GetMatchesInRange(ctx, player, platform, from, to)
	}
	if err != nil {
		return report(logger, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write output: %v\n", err)
		return 1
	}
	return 0
}

func report(logger zerolog.Logger, err error) int {
	logger.Error().Err(err).Msg("match query failed")
	switch {
	case errors.Is(err, warzone.ErrInvalidQuery):
		return 2
	case errors.Is(err, warzone.ErrCancelled):
		return 130
	default:
		return 1
	}
}

func parseFlagTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
