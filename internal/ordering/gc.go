package ordering

import (
	"context"

	"github.com/rogersnm/focus/internal/model"
	"github.com/rogersnm/focus/internal/store"
)

// PlanGarbageCollect clears the key from every unfocused task that carries
// one, then compacts the focused keys. Keys are validated before anything is
// planned, so a malformed key yields no mutations at all.
func PlanGarbageCollect(items []model.Item, opts ...Option) ([]Mutation, error) {
	return planGarbageCollect(items, buildOptions(opts))
}

func planGarbageCollect(items []model.Item, o options) ([]Mutation, error) {
	compact, err := planCompact(items, o)
	if err != nil {
		return nil, err
	}

	var muts []Mutation
	for i := range items {
		it := &items[i]
		if it.HasTag(o.tag) || !it.HasField(SortOrderField) {
			continue
		}
		muts = append(muts, mutationFor(it, nil))
	}
	return append(muts, compact...), nil
}

// GarbageCollect restores the clean state: no stray keys outside the focused
// set and focused keys exactly 1..n. Running it twice changes nothing the
// second time.
func GarbageCollect(ctx context.Context, gw store.Gateway, opts ...Option) (Result, error) {
	return run(ctx, gw, func(items []model.Item, o options) ([]Mutation, *model.Item, error) {
		muts, err := planGarbageCollect(items, o)
		return muts, nil, err
	}, opts)
}
