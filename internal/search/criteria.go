// Package search turns raw query-string parameters into validated, typed
// search criteria. Validation happens here, before any store access, so a bad
// request never costs a query.
package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadRequest is the root of every criteria rejection; handlers match it
// with errors.Is and translate it to a 400.
var ErrBadRequest = errors.New("bad request")

var (
	ErrMixedModes      = fmt.Errorf("%w: name and price filters are mutually exclusive", ErrBadRequest)
	ErrBlankName       = fmt.Errorf("%w: name must not be blank", ErrBadRequest)
	ErrNegativePrice   = fmt.Errorf("%w: price bounds must not be negative", ErrBadRequest)
	ErrMissingQuantity = fmt.Errorf("%w: quantity is required", ErrBadRequest)
)

// Params carries the raw string inputs of one request. A nil field means the
// key was absent; a pointer to "" means it was supplied blank. The distinction
// matters: an explicitly blank name is invalid, an absent one just contributes
// no criterion.
type Params struct {
	Name     *string
	MinPrice *string
	MaxPrice *string
	Limit    *string
}

// Criteria is the resolved search mode. At most one of Name and Price is set;
// both nil means the request supplied no criteria at all.
type Criteria struct {
	Name  *NameCriteria
	Price *PriceCriteria
}

type NameCriteria struct {
	Fragment string
	Limit    int // 0 = unbounded
}

type PriceCriteria struct {
	Min   float64
	Max   *float64 // nil = default to the current maximum unit_price in the store
	Limit int      // 0 = unbounded
}

func (c Criteria) None() bool { return c.Name == nil && c.Price == nil }

// Resolve applies the mode rules in order: mixed filters are rejected first,
// then a blank name, then negative bounds. No criteria at all is valid and
// yields the empty Criteria; the policy for that case belongs to the endpoint.
func Resolve(p Params) (Criteria, error) {
	if p.Name != nil && (p.MinPrice != nil || p.MaxPrice != nil) {
		return Criteria{}, ErrMixedModes
	}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return Criteria{}, ErrBlankName
		}
		return Criteria{Name: &NameCriteria{Fragment: *p.Name, Limit: coerceLimit(p.Limit)}}, nil
	}
	if p.MinPrice != nil || p.MaxPrice != nil {
		pc := PriceCriteria{Limit: coerceLimit(p.Limit)}
		if p.MinPrice != nil {
			min := coercePrice(*p.MinPrice)
			if min < 0 {
				return Criteria{}, ErrNegativePrice
			}
			pc.Min = min
		}
		if p.MaxPrice != nil {
			max := coercePrice(*p.MaxPrice)
			if max < 0 {
				return Criteria{}, ErrNegativePrice
			}
			pc.Max = &max
		}
		return Criteria{Price: &pc}, nil
	}
	return Criteria{}, nil
}

// MerchantName extracts the required name fragment for merchant search, where
// an absent or blank name is a bad request rather than an empty result.
func MerchantName(p Params) (string, error) {
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		return "", ErrBlankName
	}
	return *p.Name, nil
}

// Quantity parses the ranking count parameter; it must be present and a
// positive integer.
func Quantity(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, ErrMissingQuantity
	}
	return n, nil
}

// coercePrice parses a price bound. A present but non-numeric value coerces
// to 0 rather than failing.
func coercePrice(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func coerceLimit(raw *string) int {
	if raw == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil || n < 1 {
		return 0
	}
	return n
}
