package fetcher

import "RateVault/internal/model"

// Fetcher defines the interface for fetching exchange rates.
type Fetcher interface {
	Fetch(base string) (model.RateTable, error)
	Name() string
}
