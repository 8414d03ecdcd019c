package history

import (
	"fmt"
	"time"

	"RateVault/internal/model"
	"RateVault/internal/service"
	"RateVault/internal/store"
)

const dateLayout = "2006-01-02"

// Builder assembles historical (date, rate) series for a currency pair
// from persisted daily snapshots plus today's live rate.
type Builder struct {
	Store   *store.Store
	Service *service.Service
}

// NewBuilder creates a Builder.
func NewBuilder(st *store.Store, svc *service.Service) *Builder {
	return &Builder{Store: st, Service: svc}
}

// Build returns the rate series for the pair over the last `days` local
// calendar days, oldest first. Today's point is mandatory and comes from
// the conversion service; prior days with no snapshot (or whose snapshot
// lacks the target) are skipped silently, so the result may be shorter
// than requested. That is the expected steady state for a fresh install.
func (b *Builder) Build(base, target string, days int) ([]model.RatePoint, error) {
	if days < 1 {
		return nil, fmt.Errorf("days must be >= 1, got %d", days)
	}

	rates, err := b.Service.GetRates(base)
	if err != nil {
		return nil, err
	}
	rate, ok := rates[target]
	if !ok {
		return nil, &service.UnknownCurrencyError{Code: target}
	}

	today := time.Now()
	points := []model.RatePoint{{Date: today.Format(dateLayout), Rate: rate}}

	// Walk back most recent first, then reverse to chronological order.
	for i := 1; i < days; i++ {
		date := today.AddDate(0, 0, -i)
		table, ok := b.Store.GetSnapshot(base, date)
		if !ok {
			continue
		}
		if r, ok := table[target]; ok {
			points = append(points, model.RatePoint{Date: date.Format(dateLayout), Rate: r})
		}
	}

	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}
