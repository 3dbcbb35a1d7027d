package quote

import (
	"context"
	"hash/fnv"
	"math"
	"time"
)

// MockProvider serves deterministic synthetic quote data for development
// and tests. Prices are derived from the symbol so repeated calls agree.
type MockProvider struct{}

// NewMockProvider creates a new mock provider.
func NewMockProvider() *MockProvider { return &MockProvider{} }

// Name returns the provider's display name.
func (p *MockProvider) Name() string { return "Mock" }

// basePrice maps a symbol to a stable price between 10 and 510.
func basePrice(symbol string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return 10 + float64(h.Sum32()%50000)/100
}

// Quote returns a synthetic snapshot per symbol.
func (p *MockProvider) Quote(_ context.Context, symbols []string) ([]Snapshot, error) {
	now := time.Now().Unix()
	snapshots := make([]Snapshot, 0, len(symbols))
	for _, symbol := range symbols {
		snapshots = append(snapshots, Snapshot{
			Symbol:     symbol,
			Price:      basePrice(symbol),
			Currency:   "USD",
			Exchange:   "MOCK",
			MarketTime: now,
		})
	}
	return snapshots, nil
}

// History returns synthetic candles from start to end (or now) at the
// given interval, capped at 500 bars.
func (p *MockProvider) History(_ context.Context, symbol string, start time.Time, end *time.Time, interval Interval) ([]Candle, error) {
	until := time.Now()
	if end != nil {
		until = *end
	}

	step := interval.Duration()
	base := basePrice(symbol)

	var candles []Candle
	for t := start; !t.After(until) && len(candles) < 500; t = t.Add(step) {
		// A slow sine drift keeps the series plausible but reproducible.
		phase := float64(t.Unix()/int64(step.Seconds())) / 10
		open := base * (1 + 0.05*math.Sin(phase))
		close := base * (1 + 0.05*math.Sin(phase+0.3))
		candles = append(candles, Candle{
			Time:   t.Unix(),
			Open:   open,
			High:   math.Max(open, close) * 1.01,
			Low:    math.Min(open, close) * 0.99,
			Close:  close,
			Volume: int64(1000 + t.Unix()%9000),
		})
	}
	return candles, nil
}
