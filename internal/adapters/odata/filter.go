package odata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/google/uuid"
)

// FormatFilter renders filter as an OData $filter expression of "eq" terms
// joined by "and".
func FormatFilter(filter domain.Filter) (string, error) {
	if len(filter.Terms) == 0 {
		return "", errors.New("filter has no terms")
	}

	parts := make([]string, 0, len(filter.Terms))
	for _, term := range filter.Terms {
		if !validField(term.Field) {
			return "", fmt.Errorf("invalid filter field %q", term.Field)
		}
		literal, err := formatLiteral(term.Value)
		if err != nil {
			return "", fmt.Errorf("filter field %s: %w", term.Field, err)
		}
		parts = append(parts, term.Field+" eq "+literal)
	}

	return strings.Join(parts, " and "), nil
}

// ParseFilter is the inverse of FormatFilter. Bare literals are read as
// booleans, GUIDs or integers.
func ParseFilter(raw string) (domain.Filter, error) {
	var filter domain.Filter

	rest := strings.TrimSpace(raw)
	for {
		field, after, ok := strings.Cut(rest, " eq ")
		if !ok {
			return domain.Filter{}, fmt.Errorf("parse filter %q: expected \"eq\"", raw)
		}
		field = strings.TrimSpace(field)
		if !validField(field) {
			return domain.Filter{}, fmt.Errorf("parse filter %q: invalid field %q", raw, field)
		}

		value, remaining, err := parseLiteral(strings.TrimLeft(after, " "))
		if err != nil {
			return domain.Filter{}, fmt.Errorf("parse filter %q: %w", raw, err)
		}
		filter = filter.And(field, value)

		remaining = strings.TrimSpace(remaining)
		if remaining == "" {
			return filter, nil
		}
		next, ok := strings.CutPrefix(remaining, "and ")
		if !ok {
			return domain.Filter{}, fmt.Errorf("parse filter %q: unexpected %q", raw, remaining)
		}
		rest = next
	}
}

func formatLiteral(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'", nil
	case uuid.UUID:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	default:
		return "", fmt.Errorf("unsupported literal type %T", value)
	}
}

func parseLiteral(s string) (any, string, error) {
	if strings.HasPrefix(s, "'") {
		var b strings.Builder
		for i := 1; i < len(s); i++ {
			if s[i] != '\'' {
				b.WriteByte(s[i])
				continue
			}
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i++
				continue
			}
			return b.String(), s[i+1:], nil
		}
		return nil, "", errors.New("unterminated string literal")
	}

	token, remaining, _ := strings.Cut(s, " ")
	switch token {
	case "true":
		return true, remaining, nil
	case "false":
		return false, remaining, nil
	}
	if id, err := uuid.Parse(token); err == nil {
		return id, remaining, nil
	}
	if n, err := strconv.Atoi(token); err == nil {
		return n, remaining, nil
	}

	return nil, "", fmt.Errorf("unsupported literal %q", token)
}

func validField(field string) bool {
	if field == "" {
		return false
	}
	for _, r := range field {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
