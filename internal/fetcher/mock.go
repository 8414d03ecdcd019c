package fetcher

import "RateVault/internal/model"

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Tables map[string]model.RateTable
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(base string) (model.RateTable, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if table, ok := m.Tables[base]; ok {
		return table, nil
	}
	return generateMockTable(base), nil
}

// generateMockTable produces a plausible rate table so the daemon can run
// without network access.
func generateMockTable(base string) model.RateTable {
	codes := []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY", "INR"}
	table := make(model.RateTable, len(codes))
	for i, code := range codes {
		if code == base {
			table[code] = 1.0
			continue
		}
		table[code] = 0.5 + float64(i)*0.25
	}
	return table
}
