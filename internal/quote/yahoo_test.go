package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestYahooQuote(t *testing.T) {
	t.Run("parses_batch_response", func(t *testing.T) {
		var gotSymbols string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSymbols = r.URL.Query().Get("symbols")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"quoteResponse": {
					"result": [
						{"symbol": "AAPL", "regularMarketPrice": 189.3, "currency": "USD", "fullExchangeName": "NasdaqGS", "regularMarketTime": 1700000000},
						{"symbol": "MSFT", "regularMarketPrice": 377.4, "currency": "USD", "fullExchangeName": "NasdaqGS", "regularMarketTime": 1700000000}
					],
					"error": null
				}
			}`))
		}))
		defer server.Close()

		provider := NewYahooProvider(server.Client())
		provider.quoteURL = server.URL

		snapshots, err := provider.Quote(context.Background(), []string{"AAPL", "MSFT"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotSymbols != "AAPL,MSFT" {
			t.Errorf("expected symbols=AAPL,MSFT, got %q", gotSymbols)
		}
		if len(snapshots) != 2 {
			t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
		}
		if snapshots[0].Symbol != "AAPL" || snapshots[0].Price != 189.3 {
			t.Errorf("unexpected first snapshot: %+v", snapshots[0])
		}
		if snapshots[1].Exchange != "NasdaqGS" {
			t.Errorf("expected exchange NasdaqGS, got %s", snapshots[1].Exchange)
		}
	})

	t.Run("upstream_error_status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		provider := NewYahooProvider(server.Client())
		provider.quoteURL = server.URL

		if _, err := provider.Quote(context.Background(), []string{"AAPL"}); err == nil {
			t.Error("expected an error on a non-200 response")
		}
	})

	t.Run("no_symbols_short_circuits", func(t *testing.T) {
		provider := NewYahooProvider(http.DefaultClient)
		provider.quoteURL = "http://127.0.0.1:0" // must not be reached

		snapshots, err := provider.Quote(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snapshots != nil {
			t.Errorf("expected nil snapshots, got %v", snapshots)
		}
	})
}

func TestYahooHistory(t *testing.T) {
	t.Run("parses_chart_response", func(t *testing.T) {
		var gotPath, gotPeriod1, gotInterval string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotPeriod1 = r.URL.Query().Get("period1")
			gotInterval = r.URL.Query().Get("interval")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"chart": {
					"result": [{
						"timestamp": [1700000000, 1700086400],
						"indicators": {
							"quote": [{
								"open": [100.0, 102.0],
								"high": [103.0, 104.0],
								"low": [99.0, 101.0],
								"close": [102.0, 103.5],
								"volume": [1000, 1200]
							}]
						}
					}],
					"error": null
				}
			}`))
		}))
		defer server.Close()

		provider := NewYahooProvider(server.Client())
		provider.chartURL = server.URL

		start := time.Unix(1700000000, 0)
		candles, err := provider.History(context.Background(), "AAPL", start, nil, "1d")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotPath != "/AAPL" {
			t.Errorf("expected path /AAPL, got %s", gotPath)
		}
		if gotPeriod1 != "1700000000" {
			t.Errorf("expected period1=1700000000, got %s", gotPeriod1)
		}
		if gotInterval != "1d" {
			t.Errorf("expected interval=1d, got %s", gotInterval)
		}
		if len(candles) != 2 {
			t.Fatalf("expected 2 candles, got %d", len(candles))
		}
		if candles[1].Close != 103.5 || candles[1].Volume != 1200 {
			t.Errorf("unexpected second candle: %+v", candles[1])
		}
	})

	t.Run("ragged_indicator_arrays", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"chart": {
					"result": [{
						"timestamp": [1700000000, 1700086400, 1700172800],
						"indicators": {
							"quote": [{
								"open": [100.0, 102.0, 103.0],
								"high": [103.0, 104.0, 105.0],
								"low": [99.0],
								"close": [102.0, 103.5, 104.2],
								"volume": [1000, 1200, 1300]
							}]
						}
					}],
					"error": null
				}
			}`))
		}))
		defer server.Close()

		provider := NewYahooProvider(server.Client())
		provider.chartURL = server.URL

		candles, err := provider.History(context.Background(), "AAPL", time.Unix(1700000000, 0), nil, "1d")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(candles) != 1 {
			t.Fatalf("expected candles truncated to the shortest array, got %d", len(candles))
		}
		if candles[0].Low != 99.0 || candles[0].Close != 102.0 {
			t.Errorf("unexpected candle: %+v", candles[0])
		}
	})

	t.Run("chart_error_payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
		}))
		defer server.Close()

		provider := NewYahooProvider(server.Client())
		provider.chartURL = server.URL

		if _, err := provider.History(context.Background(), "NOSUCH", time.Unix(1700000000, 0), nil, "1d"); err == nil {
			t.Error("expected an error on a chart error payload")
		}
	})
}
