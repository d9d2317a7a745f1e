package billing

import (
	"errors"
	"sort"
	"strings"

	"dairy-billing-backend/internal/services/pricing"
)

var (
	ErrMissingCustomer     = pricing.ErrMissingCustomer
	ErrEmptyOrder          = errors.New("order has no items")
	ErrEmptyCatalog        = errors.New("catalog has no products")
	ErrInvalidCatalogEntry = errors.New("invalid catalog entry")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrNotFound            = errors.New("not found")
)

// Violations maps a field name to a short violation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func (v Violations) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// ValidationError carries the field violations of a rejected catalog entry.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f, code := range e.Violations {
		fields = append(fields, f+": "+code)
	}
	sort.Strings(fields)
	return ErrInvalidCatalogEntry.Error() + " (" + strings.Join(fields, ", ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrInvalidCatalogEntry }
