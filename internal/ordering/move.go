package ordering

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/rogersnm/focus/internal/model"
	"github.com/rogersnm/focus/internal/store"
)

// ErrItemNotFound is returned when no task matches a uuid or short id.
var ErrItemNotFound = errors.New("task not found")

// Find resolves ref against the snapshot: an exact uuid match wins, then the
// first task whose short id prints as ref.
func Find(items []model.Item, ref string) (*model.Item, error) {
	for i := range items {
		if items[i].UUID == ref {
			return &items[i], nil
		}
	}
	for i := range items {
		if short, ok := items[i].ShortID(); ok && short == ref {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no task with id %s", ErrItemNotFound, ref)
}

type edge int

const (
	front edge = -1
	back  edge = 1
)

// bound returns the smallest (front) or largest (back) focused key. ok is
// false when nothing is focused.
func bound(items []model.Item, o options, e edge) (float64, bool, error) {
	var (
		best  float64
		found bool
	)
	for i := range items {
		it := &items[i]
		if !it.HasTag(o.tag) {
			continue
		}
		k, err := Key(it)
		if err != nil {
			return 0, false, err
		}
		if !found || cmp.Compare(k, best) == int(e) {
			best = k
			found = true
		}
	}
	return best, found, nil
}

func planMove(items []model.Item, ref string, o options, e edge) ([]Mutation, *model.Item, error) {
	target, err := Find(items, ref)
	if err != nil {
		return nil, nil, err
	}

	b, ok, err := bound(items, o, e)
	if err != nil {
		return nil, target, err
	}
	if !ok {
		return nil, target, nil
	}

	cur, err := Key(target)
	if err != nil {
		return nil, target, err
	}
	if cur == b {
		return nil, target, nil
	}

	to := b + float64(e)
	return []Mutation{mutationFor(target, &to)}, target, nil
}

// PlanPromote moves ref ahead of every focused task by giving it the minimum
// focused key minus one. No other key changes. It plans nothing when ref
// already holds the minimum or when no task is focused.
func PlanPromote(items []model.Item, ref string, opts ...Option) ([]Mutation, error) {
	muts, _, err := planMove(items, ref, buildOptions(opts), front)
	return muts, err
}

// PlanDemote is PlanPromote towards the back: maximum focused key plus one.
func PlanDemote(items []model.Item, ref string, opts ...Option) ([]Mutation, error) {
	muts, _, err := planMove(items, ref, buildOptions(opts), back)
	return muts, err
}

// Promote fetches a snapshot and applies PlanPromote to it.
func Promote(ctx context.Context, gw store.Gateway, ref string, opts ...Option) (Result, error) {
	return run(ctx, gw, func(items []model.Item, o options) ([]Mutation, *model.Item, error) {
		return planMove(items, ref, o, front)
	}, opts)
}

// Demote fetches a snapshot and applies PlanDemote to it.
func Demote(ctx context.Context, gw store.Gateway, ref string, opts ...Option) (Result, error) {
	return run(ctx, gw, func(items []model.Item, o options) ([]Mutation, *model.Item, error) {
		return planMove(items, ref, o, back)
	}, opts)
}
