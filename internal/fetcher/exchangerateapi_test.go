package fetcher

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/USD" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"base":"USD","date":"2026-08-29","rates":{"EUR":0.9,"GBP":0.8}}`))
	}))
	defer srv.Close()

	f := NewExchangeRateAPIFetcher(srv.URL, "")
	table, err := f.Fetch("USD")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(table) != 2 || table["EUR"] != 0.9 {
		t.Errorf("unexpected table: %v", table)
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewExchangeRateAPIFetcher(srv.URL, "")
	_, err := f.Fetch("XXX")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	f := NewExchangeRateAPIFetcher(srv.URL, "")
	var netErr *NetworkError
	if _, err := f.Fetch("USD"); !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError for malformed body, got %v", err)
	}
}

func TestFetchMissingRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","date":"2026-08-29"}`))
	}))
	defer srv.Close()

	f := NewExchangeRateAPIFetcher(srv.URL, "")
	var netErr *NetworkError
	if _, err := f.Fetch("USD"); !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError for missing rates, got %v", err)
	}
}

func TestFetchTransportFailure(t *testing.T) {
	// Closed server: every request fails at the transport level.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	f := NewExchangeRateAPIFetcher(srv.URL, "")
	var netErr *NetworkError
	if _, err := f.Fetch("USD"); !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError for transport failure, got %v", err)
	}
}
