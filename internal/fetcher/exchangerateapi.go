package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"RateVault/internal/model"
)

// ExchangeRateAPIFetcher implements Fetcher using the ExchangeRate-API
// style REST endpoint: GET {base_url}/{base} returns a JSON body with a
// "rates" object.
type ExchangeRateAPIFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewExchangeRateAPIFetcher creates a new fetcher with optional proxy support.
func NewExchangeRateAPIFetcher(baseURL, proxyURL string) *ExchangeRateAPIFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &ExchangeRateAPIFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *ExchangeRateAPIFetcher) Name() string { return "exchangerate-api" }

// rateResponse is the expected JSON shape from the provider. Fields other
// than "rates" are ignored.
type rateResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Fetch retrieves the full rate table for a base currency.
func (f *ExchangeRateAPIFetcher) Fetch(base string) (model.RateTable, error) {
	endpoint := fmt.Sprintf("%s/%s", f.BaseURL, url.PathEscape(base))

	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, &NetworkError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{URL: endpoint, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var parsed rateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &NetworkError{URL: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Rates) == 0 {
		return nil, &NetworkError{URL: endpoint, Err: fmt.Errorf("response missing rates")}
	}

	return model.RateTable(parsed.Rates), nil
}
