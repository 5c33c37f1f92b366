package sec

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client is a typed HTTP client for the upstream SEC data service.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

// NewClient targets the service at base. A non-positive timeout falls back to
// ten seconds.
func NewClient(base string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimSuffix(base, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log.With().Str("component", "sec_client").Logger(),
	}
}

// FilingsByForm fetches filings for ticker, optionally filtered to one form
// type such as "10-K".
func (c *Client) FilingsByForm(ctx context.Context, ticker, formType string) ([]Filing, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("ticker required")
	}
	query := url.Values{"ticker": {ticker}}
	if formType != "" {
		query.Set("form_type", formType)
	}
	var payload struct {
		Ticker  string   `json:"ticker"`
		Filings []Filing `json:"filings"`
	}
	if err := c.getJSON(ctx, "/api/filings", query, &payload); err != nil {
		return nil, err
	}
	return payload.Filings, nil
}

// InsiderTransactions fetches Form 4 insider transactions for ticker.
func (c *Client) InsiderTransactions(ctx context.Context, ticker string) ([]Transaction, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("ticker required")
	}
	var payload struct {
		Ticker       string        `json:"ticker"`
		Transactions []Transaction `json:"transactions"`
	}
	if err := c.getJSON(ctx, "/api/insider-transactions", url.Values{"ticker": {ticker}}, &payload); err != nil {
		return nil, err
	}
	return payload.Transactions, nil
}

// FinancialSummary fetches the keyed financial metrics for ticker.
func (c *Client) FinancialSummary(ctx context.Context, ticker string) (Summary, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("ticker required")
	}
	var payload struct {
		Ticker  string  `json:"ticker"`
		Summary Summary `json:"summary"`
	}
	if err := c.getJSON(ctx, "/api/financial-summary", url.Values{"ticker": {ticker}}, &payload); err != nil {
		return nil, err
	}
	return payload.Summary, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, into any) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "sentinel-sec/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Detail != "" {
			return fmt.Errorf("upstream status %d: %s", resp.StatusCode, failure.Detail)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
