package history

import (
	"errors"
	"sort"
	"testing"
	"time"

	"RateVault/internal/fetcher"
	"RateVault/internal/model"
	"RateVault/internal/recorder"
	"RateVault/internal/service"
	"RateVault/internal/store"
)

func newTestBuilder(t *testing.T, f fetcher.Fetcher) (*Builder, *store.Store) {
	t.Helper()
	st, err := store.NewStore(t.TempDir(), time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	svc := service.New(st, f, recorder.NewNoopRecorder())
	return NewBuilder(st, svc), st
}

func usdFetcher() *fetcher.MockFetcher {
	return &fetcher.MockFetcher{
		Tables: map[string]model.RateTable{"USD": {"EUR": 0.9}},
	}
}

func TestBuildNoHistory(t *testing.T) {
	b, _ := newTestBuilder(t, usdFetcher())

	points, err := b.Build("USD", "EUR", 7)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected only today's point, got %d", len(points))
	}
	if points[0].Date != time.Now().Format("2006-01-02") {
		t.Errorf("expected today's date, got %s", points[0].Date)
	}
	if points[0].Rate != 0.9 {
		t.Errorf("expected today's rate 0.9, got %v", points[0].Rate)
	}
}

func TestBuildPartialHistory(t *testing.T) {
	b, st := newTestBuilder(t, usdFetcher())

	// Snapshots for 3 of the prior 6 days.
	today := time.Now()
	for _, back := range []int{2, 4, 5} {
		date := today.AddDate(0, 0, -back)
		table := model.RateTable{"EUR": 0.9 - float64(back)*0.01}
		if err := st.PutSnapshotIfAbsent("USD", date, table); err != nil {
			t.Fatalf("seed snapshot: %v", err)
		}
	}

	points, err := b.Build("USD", "EUR", 7)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("expected today + 3 snapshots, got %d", len(points))
	}
	if !sort.SliceIsSorted(points, func(i, j int) bool { return points[i].Date < points[j].Date }) {
		t.Errorf("expected ascending chronological order: %v", points)
	}
	if points[len(points)-1].Date != today.Format("2006-01-02") {
		t.Errorf("expected today last, got %s", points[len(points)-1].Date)
	}
}

func TestBuildSkipsSnapshotsMissingTarget(t *testing.T) {
	b, st := newTestBuilder(t, usdFetcher())

	yesterday := time.Now().AddDate(0, 0, -1)
	if err := st.PutSnapshotIfAbsent("USD", yesterday, model.RateTable{"JPY": 150}); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	points, err := b.Build("USD", "EUR", 7)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(points) != 1 {
		t.Errorf("expected the EUR-less snapshot to be skipped, got %d points", len(points))
	}
}

func TestBuildSingleDay(t *testing.T) {
	b, st := newTestBuilder(t, usdFetcher())

	yesterday := time.Now().AddDate(0, 0, -1)
	if err := st.PutSnapshotIfAbsent("USD", yesterday, model.RateTable{"EUR": 0.85}); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	// days=1 means today only, regardless of available history.
	points, err := b.Build("USD", "EUR", 1)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(points) != 1 {
		t.Errorf("expected 1 point for days=1, got %d", len(points))
	}
}

func TestBuildInvalidDays(t *testing.T) {
	b, _ := newTestBuilder(t, usdFetcher())
	if _, err := b.Build("USD", "EUR", 0); err == nil {
		t.Error("expected error for days=0")
	}
}

func TestBuildFailsWhenTodayUnavailable(t *testing.T) {
	f := &fetcher.MockFetcher{Err: errors.New("provider down")}
	b, st := newTestBuilder(t, f)

	yesterday := time.Now().AddDate(0, 0, -1)
	if err := st.PutSnapshotIfAbsent("USD", yesterday, model.RateTable{"EUR": 0.85}); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	_, err := b.Build("USD", "EUR", 7)
	var unavailable *service.RateUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected RateUnavailableError, got %v", err)
	}
}

func TestBuildUnknownTarget(t *testing.T) {
	b, _ := newTestBuilder(t, usdFetcher())

	_, err := b.Build("USD", "ZZZ", 7)
	var unknown *service.UnknownCurrencyError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCurrencyError, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	points := []model.RatePoint{
		{Date: "2026-08-25", Rate: 0.80},
		{Date: "2026-08-26", Rate: 0.95},
		{Date: "2026-08-27", Rate: 0.90},
	}
	stats, err := Summarize(points)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if stats.High != 0.95 || stats.Low != 0.80 {
		t.Errorf("range: got high=%v low=%v", stats.High, stats.Low)
	}
	if diff := stats.Change - 0.10; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("change: got %v", stats.Change)
	}
	if stats.ChangePct < 12.49 || stats.ChangePct > 12.51 {
		t.Errorf("change pct: got %v", stats.ChangePct)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, err := Summarize(nil); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestRangePosition(t *testing.T) {
	if got := RangePosition(0.9, 1.0, 0.8); got != 0.5 {
		t.Errorf("midpoint: got %v", got)
	}
	if got := RangePosition(0.7, 1.0, 0.8); got != 0 {
		t.Errorf("below range should clamp to 0, got %v", got)
	}
	if got := RangePosition(1.1, 1.0, 0.8); got != 1 {
		t.Errorf("above range should clamp to 1, got %v", got)
	}
	if got := RangePosition(0.9, 0.9, 0.9); got != 0.5 {
		t.Errorf("flat range: got %v", got)
	}
}
