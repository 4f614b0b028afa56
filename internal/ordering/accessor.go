package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rogersnm/focus/internal/model"
	"github.com/rogersnm/focus/internal/store"
)

// SortOrderField is the store attribute that holds the ordering key.
const SortOrderField = "sortOrder"

// ErrMalformedKey is returned when a stored sortOrder is not a number.
var ErrMalformedKey = errors.New("malformed sort key")

// Key returns the item's ordering key. A missing key is 0, not "unordered".
// NaN and infinities are malformed: they have no place in a dense ordering.
func Key(it *model.Item) (float64, error) {
	v, ok := it.Field(SortOrderField)
	if !ok || v == nil {
		return 0, nil
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: task %s has %s %v", ErrMalformedKey, it.UUID, SortOrderField, v)
	}
	return f, nil
}

// storedKey is Key for display: nil when absent or unparsable.
func storedKey(it *model.Item) *float64 {
	if v, ok := it.Field(SortOrderField); !ok || v == nil {
		return nil
	}
	f, err := Key(it)
	if err != nil {
		return nil
	}
	return &f
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func setKey(ctx context.Context, gw store.Gateway, uuid string, v float64) error {
	return gw.SetField(ctx, uuid, SortOrderField, v)
}

func clearKey(ctx context.Context, gw store.Gateway, uuid string) error {
	return gw.ClearField(ctx, uuid, SortOrderField)
}
