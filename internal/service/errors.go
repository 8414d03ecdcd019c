package service

import "fmt"

// RateUnavailableError reports that a live fetch failed and no usable
// cached table existed for the base currency.
type RateUnavailableError struct {
	Base string
	Err  error
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("rates unavailable for %s: %v", e.Base, e.Err)
}

func (e *RateUnavailableError) Unwrap() error { return e.Err }

// UnknownCurrencyError reports a target currency code absent from the
// fetched or cached rate table.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("currency %q not found", e.Code)
}
