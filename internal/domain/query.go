package domain

import (
	"fmt"
	"strings"
)

// Filter is a conjunction of equality terms. Values are strings or uuid.UUID.
type Filter struct {
	Terms []FilterTerm
}

type FilterTerm struct {
	Field string
	Value any
}

func Eq(field string, value any) Filter {
	return Filter{Terms: []FilterTerm{{Field: field, Value: value}}}
}

func (f Filter) And(field string, value any) Filter {
	terms := make([]FilterTerm, 0, len(f.Terms)+1)
	terms = append(terms, f.Terms...)
	terms = append(terms, FilterTerm{Field: field, Value: value})
	return Filter{Terms: terms}
}

func (f Filter) String() string {
	parts := make([]string, 0, len(f.Terms))
	for _, term := range f.Terms {
		parts = append(parts, fmt.Sprintf("%s=%v", term.Field, term.Value))
	}
	return strings.Join(parts, ",")
}
