package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	yahooQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"
	yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooQuoteResponse is the top-level Yahoo Finance quote response.
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []yahooQuoteResult `json:"result"`
		Error  *json.RawMessage   `json:"error"`
	} `json:"quoteResponse"`
}

// yahooQuoteResult is a single quote result from Yahoo Finance.
type yahooQuoteResult struct {
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	Currency           string  `json:"currency"`
	FullExchangeName   string  `json:"fullExchangeName"`
	RegularMarketTime  int64   `json:"regularMarketTime"`
}

// yahooChartResponse is the top-level Yahoo Finance chart response.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooProvider fetches quotes and candle history from Yahoo Finance.
type YahooProvider struct {
	httpClient *http.Client
	quoteURL   string // overridable for tests
	chartURL   string // overridable for tests
}

// NewYahooProvider creates a new Yahoo Finance provider.
func NewYahooProvider(httpClient *http.Client) *YahooProvider {
	return &YahooProvider{httpClient: httpClient, quoteURL: yahooQuoteURL, chartURL: yahooChartURL}
}

// Name returns the provider's display name.
func (p *YahooProvider) Name() string { return "Yahoo Finance" }

// Quote fetches current snapshots for the given symbols in one batch.
func (p *YahooProvider) Quote(ctx context.Context, symbols []string) ([]Snapshot, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	endpoint := p.quoteURL + "?symbols=" + url.QueryEscape(strings.Join(symbols, ","))
	var quoteResp yahooQuoteResponse
	if err := p.getJSON(ctx, endpoint, &quoteResp); err != nil {
		return nil, err
	}
	if quoteResp.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo quote error: %s", string(*quoteResp.QuoteResponse.Error))
	}

	snapshots := make([]Snapshot, 0, len(quoteResp.QuoteResponse.Result))
	for _, r := range quoteResp.QuoteResponse.Result {
		snapshots = append(snapshots, Snapshot{
			Symbol:     r.Symbol,
			Price:      r.RegularMarketPrice,
			Currency:   r.Currency,
			Exchange:   r.FullExchangeName,
			MarketTime: r.RegularMarketTime,
		})
	}
	return snapshots, nil
}

// History fetches candles from the Yahoo Finance chart endpoint.
func (p *YahooProvider) History(ctx context.Context, symbol string, start time.Time, end *time.Time, interval Interval) ([]Candle, error) {
	params := url.Values{}
	params.Set("period1", strconv.FormatInt(start.Unix(), 10))
	if end != nil {
		params.Set("period2", strconv.FormatInt(end.Unix(), 10))
	}
	params.Set("interval", string(interval))

	endpoint := p.chartURL + "/" + url.PathEscape(symbol) + "?" + params.Encode()
	var chartResp yahooChartResponse
	if err := p.getJSON(ctx, endpoint, &chartResp); err != nil {
		return nil, err
	}
	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error: %s (%s)", chartResp.Chart.Error.Description, chartResp.Chart.Error.Code)
	}
	if len(chartResp.Chart.Result) == 0 || len(chartResp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart: empty result for %s", symbol)
	}

	result := chartResp.Chart.Result[0]
	bars := result.Indicators.Quote[0]

	// Yahoo occasionally ships ragged indicator arrays; only index up to
	// the shortest one.
	n := len(result.Timestamp)
	for _, l := range []int{len(bars.Open), len(bars.High), len(bars.Low), len(bars.Close), len(bars.Volume)} {
		if l < n {
			n = l
		}
	}

	candles := make([]Candle, 0, n)
	for i := 0; i < n; i++ {
		candles = append(candles, Candle{
			Time:   result.Timestamp[i],
			Open:   bars.Open[i],
			High:   bars.High[i],
			Low:    bars.Low[i],
			Close:  bars.Close[i],
			Volume: bars.Volume[i],
		})
	}
	return candles, nil
}

// getJSON performs a GET against the Yahoo API and decodes the JSON body.
func (p *YahooProvider) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
