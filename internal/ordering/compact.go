package ordering

import (
	"cmp"
	"context"
	"slices"

	"github.com/rogersnm/focus/internal/model"
	"github.com/rogersnm/focus/internal/store"
)

// Entry is a focused task together with its resolved key.
type Entry struct {
	Item    *model.Item
	Key     float64
	Present bool
}

// Rank returns the focused tasks in priority order: ascending key, ties kept
// in snapshot order. Any malformed key fails the whole ranking.
func Rank(items []model.Item, opts ...Option) ([]Entry, error) {
	return rank(items, buildOptions(opts))
}

func rank(items []model.Item, o options) ([]Entry, error) {
	var entries []Entry
	for i := range items {
		it := &items[i]
		if !it.HasTag(o.tag) {
			continue
		}
		k, err := Key(it)
		if err != nil {
			return nil, err
		}
		v, ok := it.Field(SortOrderField)
		entries = append(entries, Entry{Item: it, Key: k, Present: ok && v != nil})
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return entries, nil
}

// PlanCompact renumbers focused keys to 1..n in rank order. Tasks already
// holding their target key are left alone, so a compacted set plans nothing.
func PlanCompact(items []model.Item, opts ...Option) ([]Mutation, error) {
	return planCompact(items, buildOptions(opts))
}

func planCompact(items []model.Item, o options) ([]Mutation, error) {
	entries, err := rank(items, o)
	if err != nil {
		return nil, err
	}
	var muts []Mutation
	for i, e := range entries {
		target := float64(i + 1)
		if e.Present && e.Key == target {
			continue
		}
		muts = append(muts, mutationFor(e.Item, &target))
	}
	return muts, nil
}

// Compact fetches a snapshot and compacts the focused keys without touching
// unfocused tasks.
func Compact(ctx context.Context, gw store.Gateway, opts ...Option) (Result, error) {
	return run(ctx, gw, func(items []model.Item, o options) ([]Mutation, *model.Item, error) {
		muts, err := planCompact(items, o)
		return muts, nil, err
	}, opts)
}
