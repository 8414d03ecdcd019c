package service

import (
	"log"
	"sort"
	"time"

	"RateVault/internal/fetcher"
	"RateVault/internal/model"
	"RateVault/internal/recorder"
	"RateVault/internal/store"
)

// defaultCurrencies is the fallback list used when the currency list can
// neither be read from cache nor fetched.
var defaultCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY", "INR"}

// Service answers rate and conversion queries, applying the
// cache-freshness policy against the store and falling back to live
// fetches from the upstream provider.
type Service struct {
	Store    *store.Store
	Fetcher  fetcher.Fetcher
	Recorder recorder.Recorder
}

// New creates a Service.
func New(st *store.Store, f fetcher.Fetcher, rec recorder.Recorder) *Service {
	return &Service{Store: st, Fetcher: f, Recorder: rec}
}

// GetRates returns the rate table for a base currency, served from the
// cache when fresh enough, otherwise refreshed from the provider.
func (s *Service) GetRates(base string) (model.RateTable, error) {
	if table, ok := s.Store.GetCached(base); ok {
		return table, nil
	}
	return s.Refresh(base)
}

// Refresh fetches live rates for a base currency, updates the rolling
// cache, and writes today's historical snapshot if it is the first fetch
// of the day. Store write failures are logged but do not fail the call;
// the fetched table is still returned.
func (s *Service) Refresh(base string) (model.RateTable, error) {
	table, err := s.Fetcher.Fetch(base)
	if err != nil {
		return nil, &RateUnavailableError{Base: base, Err: err}
	}

	if err := s.Store.PutCached(base, table); err != nil {
		log.Printf("[ERROR] cache rates for %s: %v", base, err)
	}
	if err := s.Store.PutSnapshotIfAbsent(base, time.Now(), table); err != nil {
		log.Printf("[ERROR] snapshot rates for %s: %v", base, err)
	}
	if err := s.Recorder.RecordFetch(&recorder.FetchEvent{
		Base:      base,
		Source:    s.Fetcher.Name(),
		RateCount: len(table),
	}); err != nil {
		log.Printf("[ERROR] record fetch: %v", err)
	}

	return table, nil
}

// Convert converts an amount from the base currency to the target
// currency. The amount is not validated; zero and negative values pass
// through the multiplication unchanged.
func (s *Service) Convert(base, target string, amount float64) (float64, error) {
	cached := false
	if _, ok := s.Store.GetCached(base); ok {
		cached = true
	}

	rates, err := s.GetRates(base)
	if err != nil {
		return 0, err
	}
	rate, ok := rates[target]
	if !ok {
		return 0, &UnknownCurrencyError{Code: target}
	}
	result := amount * rate

	if err := s.Recorder.RecordConversion(&recorder.ConversionEvent{
		Base:   base,
		Target: target,
		Amount: amount,
		Rate:   rate,
		Result: result,
		Cached: cached,
	}); err != nil {
		log.Printf("[ERROR] record conversion: %v", err)
	}

	return result, nil
}

// Currencies returns the sorted list of known currency codes. The list is
// cached for 24 hours and seeded from a USD fetch; when both the cache
// and the fetch fail, a fixed default list is returned.
func (s *Service) Currencies() []string {
	if currencies, ok := s.Store.GetCurrencies(); ok {
		return sortedCodes(currencies)
	}

	table, err := s.GetRates("USD")
	if err != nil {
		log.Printf("[WARN] load currencies: %v, using defaults", err)
		return append([]string(nil), defaultCurrencies...)
	}

	currencies := make(map[string]string, len(table))
	for code := range table {
		currencies[code] = code
	}
	if err := s.Store.PutCurrencies(currencies); err != nil {
		log.Printf("[ERROR] cache currency list: %v", err)
	}
	return sortedCodes(currencies)
}

func sortedCodes(currencies map[string]string) []string {
	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
