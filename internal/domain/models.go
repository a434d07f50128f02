package domain

import (
	"time"
)

type LookupKind string

const (
	LookupRecent LookupKind = "recent"
	LookupRange  LookupKind = "range"
)

// Outcome is how a match query resolved.
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeUnauthenticated Outcome = "unauthenticated"
	OutcomeUpstreamError   Outcome = "upstream_error"
	OutcomeCancelled       Outcome = "cancelled"
	OutcomeInvalid         Outcome = "invalid"
)

// Lookup is one match query made through the service. Match payloads are not
// kept, only what was asked and how it went.
type Lookup struct {
	ID           string // nanoid
	PlayerName   string
	Platform     string
	Kind         LookupKind
	RangeStart   *time.Time
	RangeEnd     *time.Time
	Outcome      Outcome
	Status       int // upstream status, 0 when no response
	MatchCount   int
	ErrorMessage string
	Duration     time.Duration
	CreatedAt    time.Time
}
