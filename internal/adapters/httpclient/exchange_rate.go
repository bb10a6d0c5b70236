package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fxconverter/internal/domain"
	"net/http"
	"net/url"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

// ExchangeRateClient talks to an exchangeratesapi.io compatible endpoint.
type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
	clock   clockwork.Clock
}

type apiError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

// Rates are decoded straight into decimals so provider values never pass through float64.
type apiResponse struct {
	Success *bool                      `json:"success"`
	Base    string                     `json:"base"`
	Rates   map[string]decimal.Decimal `json:"rates"`
	Error   *apiError                  `json:"error"`
}

func (c *ExchangeRateClient) FetchSnapshot(ctx context.Context, base string) (domain.RateSnapshot, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: failed to parse base URL: %v", domain.ErrExternalServiceUnavailable, err)
	}

	q := u.Query()
	q.Set("base", base)
	if c.apiKey != "" {
		q.Set("access_key", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: failed to create request for base %q: %v", domain.ErrExternalServiceUnavailable, base, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error carries the full URL, access key included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return domain.RateSnapshot{}, fmt.Errorf("%w: failed to execute request for base %q: %v", domain.ErrExternalServiceUnavailable, base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.RateSnapshot{}, fmt.Errorf("%w: unexpected status code %d for base %q", domain.ErrExternalServiceUnavailable, resp.StatusCode, base)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: failed to decode response for base %q: %v", domain.ErrExternalServiceUnavailable, base, err)
	}

	if body.Success != nil && !*body.Success {
		detail := "unknown error"
		if body.Error != nil {
			detail = fmt.Sprintf("%s (%d): %s", body.Error.Type, body.Error.Code, body.Error.Info)
		}
		return domain.RateSnapshot{}, fmt.Errorf("%w: api returned non-success result for base %q: %s", domain.ErrExternalServiceUnavailable, base, detail)
	}

	if body.Rates == nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: invalid response from exchange rate api: missing rates for base %q", domain.ErrExternalServiceUnavailable, base)
	}

	return domain.NewRateSnapshot(base, body.Rates, c.clock.Now()), nil
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string, apiKey string, clock clockwork.Clock) *ExchangeRateClient {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL, apiKey: apiKey, clock: clock}
}
