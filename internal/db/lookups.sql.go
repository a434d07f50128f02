package db

import (
	"context"
	"time"
)

const insertLookup = `-- name: InsertLookup :exec
INSERT INTO lookups (
    id, player_name, platform, kind, range_start, range_end,
    outcome, status, match_count, error_message, duration_ms, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertLookupParams struct {
	ID           string     `json:"id"`
	PlayerName   string     `json:"player_name"`
	Platform     string     `json:"platform"`
	Kind         string     `json:"kind"`
	RangeStart   *time.Time `json:"range_start"`
	RangeEnd     *time.Time `json:"range_end"`
	Outcome      string     `json:"outcome"`
	Status       int64      `json:"status"`
	MatchCount   int64      `json:"match_count"`
	ErrorMessage string     `json:"error_message"`
	DurationMs   int64      `json:"duration_ms"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (q *Queries) InsertLookup(ctx context.Context, arg InsertLookupParams) error {
	_, err := q.db.ExecContext(ctx, insertLookup,
		arg.ID,
		arg.PlayerName,
		arg.Platform,
		arg.Kind,
		arg.RangeStart,
		arg.RangeEnd,
		arg.Outcome,
		arg.Status,
		arg.MatchCount,
		arg.ErrorMessage,
		arg.DurationMs,
		arg.CreatedAt,
	)
	return err
}

const listLookupsByPlayer = `-- name: ListLookupsByPlayer :many
SELECT id, player_name, platform, kind, range_start, range_end, outcome, status, match_count, error_message, duration_ms, created_at
FROM lookups
WHERE player_name = ? AND platform = ?
ORDER BY created_at DESC
LIMIT ?
`

type ListLookupsByPlayerParams struct {
	PlayerName string `json:"player_name"`
	Platform   string `json:"platform"`
	Limit      int64  `json:"limit"`
}

func (q *Queries) ListLookupsByPlayer(ctx context.Context, arg ListLookupsByPlayerParams) ([]Lookup, error) {
	rows, err := q.db.QueryContext(ctx, listLookupsByPlayer, arg.PlayerName, arg.Platform, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Lookup
	for rows.Next() {
		var i Lookup
		if err := rows.Scan(
			&i.ID,
			&i.PlayerName,
			&i.Platform,
			&i.Kind,
			&i.RangeStart,
			&i.RangeEnd,
			&i.Outcome,
			&i.Status,
			&i.MatchCount,
			&i.ErrorMessage,
			&i.DurationMs,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listLookupsByPlayerName = `-- name: ListLookupsByPlayerName :many
SELECT id, player_name, platform, kind, range_start, range_end, outcome, status, match_count, error_message, duration_ms, created_at
FROM lookups
WHERE player_name = ?
ORDER BY created_at DESC
LIMIT ?
`

type ListLookupsByPlayerNameParams struct {
	PlayerName string `json:"player_name"`
	Limit      int64  `json:"limit"`
}

func (q *Queries) ListLookupsByPlayerName(ctx context.Context, arg ListLookupsByPlayerNameParams) ([]Lookup, error) {
	rows, err := q.db.QueryContext(ctx, listLookupsByPlayerName, arg.PlayerName, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Lookup
	for rows.Next() {
		var i Lookup
		if err := rows.Scan(
			&i.ID,
			&i.PlayerName,
			&i.Platform,
			&i.Kind,
			&i.RangeStart,
			&i.RangeEnd,
			&i.Outcome,
			&i.Status,
			&i.MatchCount,
			&i.ErrorMessage,
			&i.DurationMs,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRecentLookups = `-- name: ListRecentLookups :many
SELECT id, player_name, platform, kind, range_start, range_end, outcome, status, match_count, error_message, duration_ms, created_at
FROM lookups
ORDER BY created_at DESC
LIMIT ?
`

func (q *Queries) ListRecentLookups(ctx context.Context, limit int64) ([]Lookup, error) {
	rows, err := q.db.QueryContext(ctx, listRecentLookups, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Lookup
	for rows.Next() {
		var i Lookup
		if err := rows.Scan(
			&i.ID,
			&i.PlayerName,
			&i.Platform,
			&i.Kind,
			&i.RangeStart,
			&i.RangeEnd,
			&i.Outcome,
			&i.Status,
			&i.MatchCount,
			&i.ErrorMessage,
			&i.DurationMs,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
