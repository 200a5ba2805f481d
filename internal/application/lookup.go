package application

import (
	"context"
	"fmt"
	"reflect"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/bnema/xpertdoc-portal-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

type MatchPolicy string

const (
	// MatchFirst takes the first record in server order when several match.
	MatchFirst MatchPolicy = "first"
	// MatchStrict fails with domain.ErrAmbiguous when several records match.
	MatchStrict MatchPolicy = "strict"
)

func ParseMatchPolicy(raw string) (MatchPolicy, error) {
	policy := MatchPolicy(raw)
	switch policy {
	case MatchFirst, MatchStrict:
		return policy, nil
	case "":
		return MatchFirst, nil
	default:
		return "", fmt.Errorf("unsupported match policy %q", raw)
	}
}

var uuidType = reflect.TypeOf(uuid.UUID{})

// lookupOne resolves a point lookup: query entitySet with filter and decode
// the single expected record into T.
func lookupOne[T any](ctx context.Context, portal ports.Portal, policy MatchPolicy, entitySet string, filter domain.Filter) (T, error) {
	var out T

	records, err := portal.Query(ctx, entitySet, filter)
	if err != nil {
		return out, fmt.Errorf("query %s: %w", entitySet, err)
	}

	switch {
	case len(records) == 0:
		return out, fmt.Errorf("%s where %s: %w", entitySet, filter, domain.ErrNotFound)
	case len(records) > 1 && policy == MatchStrict:
		return out, fmt.Errorf("%s where %s: %w: %d records", entitySet, filter, domain.ErrAmbiguous, len(records))
	}

	if err := decodeRecord(records[0], &out); err != nil {
		return out, fmt.Errorf("decode %s record: %w", entitySet, err)
	}
	return out, nil
}

func decodeRecord(record domain.Record, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToUUIDHook,
		Result:           out,
		TagName:          "odata",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]any(record))
}

func stringToUUIDHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != uuidType || from.Kind() != reflect.String {
		return data, nil
	}

	raw := data.(string)
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}
