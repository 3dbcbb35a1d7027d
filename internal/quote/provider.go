// Package quote fetches market price and history data from an upstream
// provider, with optional caching. The gateway keeps no state of its own;
// every call is independent.
package quote

import (
	"context"
	"time"
)

// Snapshot is a point-in-time quote for one symbol.
type Snapshot struct {
	Symbol     string  `json:"symbol"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency,omitempty"`
	Exchange   string  `json:"exchange,omitempty"`
	MarketTime int64   `json:"market_time,omitempty"`
}

// Candle is one OHLCV price bar. Time is epoch seconds.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Interval is a candle width accepted by the history endpoint.
type Interval string

// DefaultInterval is substituted silently for unknown intervals.
const DefaultInterval Interval = "1d"

var allowedIntervals = map[Interval]bool{
	"1d": true, "1wk": true, "1mo": true,
	"5m": true, "15m": true, "30m": true, "1h": true,
}

// NormalizeInterval returns the interval if recognized, DefaultInterval otherwise.
func NormalizeInterval(raw string) Interval {
	if raw == "" {
		return DefaultInterval
	}
	iv := Interval(raw)
	if !allowedIntervals[iv] {
		return DefaultInterval
	}
	return iv
}

// Duration returns the candle width as a time.Duration.
func (iv Interval) Duration() time.Duration {
	switch iv {
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "30m":
		return 30 * time.Minute
	case "1h":
		return time.Hour
	case "1wk":
		return 7 * 24 * time.Hour
	case "1mo":
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Provider fetches quote data from an upstream source.
type Provider interface {
	// Name returns the provider's display name.
	Name() string
	// Quote returns snapshots for the given symbols.
	Quote(ctx context.Context, symbols []string) ([]Snapshot, error)
	// History returns candles for one symbol over [start, end].
	// A nil end means "up to now".
	History(ctx context.Context, symbol string, start time.Time, end *time.Time, interval Interval) ([]Candle, error)
}
