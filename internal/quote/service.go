package quote

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "tradesim/internal/errors"
)

// dateLayouts are the accepted formats for history start/end parameters.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate parses a history date parameter.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unparseable date: " + raw)
}

// Service is the quote gateway: it normalizes symbols, bounds upstream
// calls by a timeout, and consults the optional cache.
type Service struct {
	provider Provider
	cache    *Cache
	timeout  time.Duration
}

// NewService creates a quote Service over the given provider. cache may
// be nil when Redis is not configured.
func NewService(provider Provider, cache *Cache, timeout time.Duration) *Service {
	return &Service{provider: provider, cache: cache, timeout: timeout}
}

// normalizeSymbols trims and uppercases symbols, dropping empties.
func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// classify maps an upstream failure onto the gateway error taxonomy.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return apperrors.Wrap(apperrors.ErrUpstreamTimeout, err)
	}
	return apperrors.Wrap(apperrors.ErrUpstreamFailure, err)
}

// Quote returns snapshots for the given symbols. Cached symbols are served
// without touching the upstream; the rest are fetched in one bounded call.
func (s *Service) Quote(ctx context.Context, symbols []string) ([]Snapshot, error) {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one symbol is required")
	}

	cached := make(map[string]Snapshot, len(symbols))
	var misses []string
	for _, symbol := range symbols {
		if snapshot, ok := s.cache.GetSnapshot(ctx, symbol); ok {
			cached[symbol] = *snapshot
		} else {
			misses = append(misses, symbol)
		}
	}

	fetched := make(map[string]Snapshot, len(misses))
	if len(misses) > 0 {
		fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		snapshots, err := s.provider.Quote(fetchCtx, misses)
		if err != nil {
			return nil, classify(fetchCtx, err)
		}
		for _, snapshot := range snapshots {
			fetched[snapshot.Symbol] = snapshot
			s.cache.PutSnapshot(ctx, snapshot)
		}
	}

	// Preserve the caller's symbol order; unknown symbols are omitted,
	// as the upstream omits them.
	result := make([]Snapshot, 0, len(symbols))
	for _, symbol := range symbols {
		if snapshot, ok := cached[symbol]; ok {
			result = append(result, snapshot)
		} else if snapshot, ok := fetched[symbol]; ok {
			result = append(result, snapshot)
		}
	}
	return result, nil
}

// History returns candles for one symbol. start is required; end is
// optional; unknown intervals silently fall back to 1d.
func (s *Service) History(ctx context.Context, symbol, start, end, interval string) ([]Candle, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}

	if start == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid or missing start date")
	}
	startTime, err := ParseDate(start)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid or missing start date")
	}

	var endTime *time.Time
	if end != "" {
		parsed, err := ParseDate(end)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end date")
		}
		endTime = &parsed
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	candles, err := s.provider.History(fetchCtx, symbol, startTime, endTime, NormalizeInterval(interval))
	if err != nil {
		return nil, classify(fetchCtx, err)
	}
	return candles, nil
}
