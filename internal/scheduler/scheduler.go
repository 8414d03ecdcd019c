package scheduler

import (
	"context"
	"fmt"
	"log"

	"RateVault/internal/service"
	"RateVault/internal/store"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron tasks that keep favorite pairs' rates warm
// and guarantee a daily historical snapshot for them.
type Scheduler struct {
	Cron    *cron.Cron
	Store   *store.Store
	Service *service.Service
	Ctx     context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, st *store.Store, svc *service.Service) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Store:   st,
		Service: svc,
		Ctx:     ctx,
	}
}

// RegisterAll registers the refresh and daily snapshot tasks.
func (s *Scheduler) RegisterAll(refreshCron, snapshotCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (for RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

// refreshTask re-resolves each favorite pair through the cache-respecting
// path, so rates stay warm without hammering the provider.
func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running favorites refresh")
	for _, f := range s.Store.ListFavorites() {
		if s.Ctx.Err() != nil {
			return
		}
		rates, err := s.Service.GetRates(f.Base)
		if err != nil {
			log.Printf("[ERROR] refresh rates for %s: %v", f.Base, err)
			continue
		}
		if rate, ok := rates[f.Target]; ok {
			log.Printf("[INFO] %s -> %s: %.4f", f.Base, f.Target, rate)
		} else {
			log.Printf("[WARN] %s missing from %s rates", f.Target, f.Base)
		}
	}
}

// snapshotTask forces a live fetch per favorite base once a day, so a
// historical snapshot accrues even when the refresh cache never goes stale.
func (s *Scheduler) snapshotTask() {
	log.Println("[INFO] running daily snapshot")
	for _, base := range s.favoriteBases() {
		if s.Ctx.Err() != nil {
			return
		}
		if _, err := s.Service.Refresh(base); err != nil {
			log.Printf("[ERROR] snapshot rates for %s: %v", base, err)
		}
	}
}

// favoriteBases returns the distinct base currencies across all favorites,
// preserving first-seen order.
func (s *Scheduler) favoriteBases() []string {
	seen := make(map[string]bool)
	var bases []string
	for _, f := range s.Store.ListFavorites() {
		if !seen[f.Base] {
			seen[f.Base] = true
			bases = append(bases, f.Base)
		}
	}
	return bases
}
