package ordering

import (
	"context"
	"fmt"

	"github.com/rogersnm/focus/internal/model"
	"github.com/rogersnm/focus/internal/store"
)

// DefaultTag marks a task as part of the manual ordering.
const DefaultTag = "focus"

// Mutation is one planned write of the ordering key.
type Mutation struct {
	UUID        string
	ShortID     string
	Description string
	From        *float64 // nil when the key is absent or unreadable
	To          *float64 // nil clears the key
}

func (m Mutation) Clears() bool {
	return m.To == nil
}

func mutationFor(it *model.Item, to *float64) Mutation {
	short, _ := it.ShortID()
	return Mutation{
		UUID:        it.UUID,
		ShortID:     short,
		Description: it.Description,
		From:        storedKey(it),
		To:          to,
	}
}

// Result reports what an operation planned and how much of it reached the store.
type Result struct {
	Planned []Mutation
	Applied int
	// Target is the task a promote or demote resolved to.
	Target *model.Item
}

type options struct {
	tag    string
	dryRun bool
}

type Option func(*options)

// WithTag overrides the tag that marks focused tasks.
func WithTag(tag string) Option {
	return func(o *options) {
		if tag != "" {
			o.tag = tag
		}
	}
}

// WithDryRun plans without issuing any mutation.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

func buildOptions(opts []Option) options {
	o := options{tag: DefaultTag}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Apply issues the mutations in order, one at a time, and stops at the first
// failure. It returns how many were applied; earlier writes are not undone.
func Apply(ctx context.Context, gw store.Gateway, plan []Mutation) (int, error) {
	for i, m := range plan {
		var err error
		if m.Clears() {
			err = clearKey(ctx, gw, m.UUID)
		} else {
			err = setKey(ctx, gw, m.UUID, *m.To)
		}
		if err != nil {
			return i, fmt.Errorf("applied %d of %d changes: %w", i, len(plan), err)
		}
	}
	return len(plan), nil
}

type planner func(items []model.Item, o options) ([]Mutation, *model.Item, error)

// run is the shared read-compute-write cycle behind every operation.
func run(ctx context.Context, gw store.Gateway, plan planner, opts []Option) (Result, error) {
	o := buildOptions(opts)

	items, err := gw.Export(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("exporting tasks: %w", err)
	}

	muts, target, err := plan(items, o)
	if err != nil {
		return Result{}, err
	}
	res := Result{Planned: muts, Target: target}
	if o.dryRun {
		return res, nil
	}

	res.Applied, err = Apply(ctx, gw, muts)
	return res, err
}
