package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any admin listing can request.
	MaxLimit = 100
)

// Params holds skip/limit pagination inputs parsed from a query string.
type Params struct {
	Skip  int
	Limit int
}

// FromQuery reads skip/limit from request query values, applying defaults
// and bounds. Malformed values fall back to the defaults.
func FromQuery(query url.Values) Params {
	return Params{
		Skip:  parseNonNegative(query.Get("skip"), 0),
		Limit: NormalizeLimit(parseNonNegative(query.Get("limit"), DefaultLimit)),
	}
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func parseNonNegative(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
