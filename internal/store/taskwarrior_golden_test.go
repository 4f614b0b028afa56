package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rogersnm/focus/internal/ordering"
	"github.com/rogersnm/focus/internal/store"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	export string
	lines  []string
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.lines = append(r.lines, name+" "+strings.Join(args, " "))
	if len(args) > 0 && args[len(args)-1] == "export" {
		return []byte(r.export), nil, nil
	}
	return nil, nil, nil
}

const gcExport = `[
{"id":1,"uuid":"00000000-0000-4000-8000-000000000001","description":"Write report","status":"pending","tags":["focus"],"sortOrder":3},
{"id":2,"uuid":"00000000-0000-4000-8000-000000000002","description":"Review PR","status":"pending","tags":["focus"],"sortOrder":1},
{"id":3,"uuid":"00000000-0000-4000-8000-000000000003","description":"Old errand","status":"pending","sortOrder":5},
{"id":4,"uuid":"00000000-0000-4000-8000-000000000004","description":"Plan week","status":"pending","tags":["focus"]}
]`

// The command lines a gc run sends to taskwarrior are pinned in testdata.
func TestGarbageCollect_TaskwarriorCommands(t *testing.T) {
	r := &recordingRunner{export: gcExport}
	tw := store.NewTaskwarrior(store.WithRunner(r))

	res, err := ordering.GarbageCollect(context.Background(), tw)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Applied)

	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "gc_commands", []byte(strings.Join(r.lines, "\n")+"\n"))
}
