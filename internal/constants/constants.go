package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	LoginTimeout       = 15 * time.Second
)

const (
	HTTPMaxConnsPerHost     = 100
	HTTPReadTimeout         = 10 * time.Second
	HTTPWriteTimeout        = 10 * time.Second
	HTTPMaxIdleConnDuration = 1 * time.Minute
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	LookupListDefault = 20
	LookupListMax     = 100
)
