package db

import (
	"time"
)

type Lookup struct {
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
