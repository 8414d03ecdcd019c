package model

import "fmt"

// RateTable maps a target currency code to the multiplicative rate
// relative to one unit of the base currency.
type RateTable map[string]float64

// CacheEntry is one base currency's cached rate table.
// Timestamp is epoch seconds, kept as a float to stay compatible with
// cache files written by earlier versions of the tool.
type CacheEntry struct {
	Timestamp float64   `json:"timestamp"`
	Rates     RateTable `json:"rates"`
}

// Favorite is a saved currency pair.
type Favorite struct {
	Base      string  `json:"base"`
	Target    string  `json:"target"`
	Timestamp float64 `json:"timestamp"`
}

// FavoriteID derives the unique key for a (base, target) pair.
func FavoriteID(base, target string) string {
	return fmt.Sprintf("%s_%s", base, target)
}

// CurrencyList is the cached set of known currency codes with display names.
type CurrencyList struct {
	Timestamp  float64           `json:"timestamp"`
	Currencies map[string]string `json:"currencies"`
}

// RatePoint is one point of a historical rate series.
type RatePoint struct {
	Date string  // YYYY-MM-DD, local time
	Rate float64
}
