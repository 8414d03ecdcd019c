package store

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"RateVault/internal/model"
)

// GetCurrencies returns the cached currency list if it is younger than the
// currency-list timeout.
func (s *Store) GetCurrencies() (map[string]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.currenciesPath())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read currency list: %v", err)
		}
		return nil, false
	}
	var list model.CurrencyList
	if err := json.Unmarshal(data, &list); err != nil {
		log.Printf("[WARN] corrupt currency list: %v", err)
		return nil, false
	}
	age := epochSeconds(time.Now()) - list.Timestamp
	if age >= s.currencyTimeout.Seconds() || len(list.Currencies) == 0 {
		return nil, false
	}
	return list.Currencies, true
}

// PutCurrencies replaces the cached currency list with the current timestamp.
func (s *Store) PutCurrencies(currencies map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSONFile(s.currenciesPath(), model.CurrencyList{
		Timestamp:  epochSeconds(time.Now()),
		Currencies: currencies,
	})
}
