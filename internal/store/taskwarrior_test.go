package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls  []string
	stdout string
	stderr string
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	return []byte(f.stdout), []byte(f.stderr), f.err
}

const exportJSON = `[
{"id":1,"uuid":"00000000-0000-4000-8000-000000000001","description":"Write report","status":"pending","entry":"20260101T090000Z","tags":["focus"],"sortOrder":2,"urgency":4.2},
{"id":0,"uuid":"00000000-0000-4000-8000-000000000002","description":"Waiting on bank","status":"waiting","entry":"20260102T090000Z","project":"home"}
]`

func TestTaskwarrior_Export(t *testing.T) {
	r := &fakeRunner{stdout: exportJSON}
	s := NewTaskwarrior(WithRunner(r))

	items, err := s.Export(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, []string{"task rc.confirmation=off rc.verbose=nothing rc.json.array=on +PENDING export"}, r.calls)

	assert.Equal(t, "Write report", items[0].Description)
	short, ok := items[0].ShortID()
	require.True(t, ok)
	assert.Equal(t, "1", short)
	assert.True(t, items[0].HasField("sortOrder"))

	_, ok = items[1].ShortID()
	assert.False(t, ok)
	assert.True(t, items[1].HasField("project"))
}

func TestTaskwarrior_ExportCustomFilter(t *testing.T) {
	r := &fakeRunner{stdout: "[]"}
	s := NewTaskwarrior(WithRunner(r), WithBinary("/opt/task"), WithFilter("+PENDING", "project:focus"))

	items, err := s.Export(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, []string{"/opt/task rc.confirmation=off rc.verbose=nothing rc.json.array=on +PENDING project:focus export"}, r.calls)
}

func TestTaskwarrior_ExportEmptyOutput(t *testing.T) {
	s := NewTaskwarrior(WithRunner(&fakeRunner{stdout: "\n"}))
	items, err := s.Export(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTaskwarrior_ExportFailure(t *testing.T) {
	s := NewTaskwarrior(WithRunner(&fakeRunner{err: errors.New("exit status 2"), stderr: "No such file\n"}))
	_, err := s.Export(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "No such file")
}

func TestTaskwarrior_ExportGarbage(t *testing.T) {
	s := NewTaskwarrior(WithRunner(&fakeRunner{stdout: "Configuration override rc.verbose=nothing"}))
	_, err := s.Export(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTaskwarrior_SetField(t *testing.T) {
	r := &fakeRunner{}
	s := NewTaskwarrior(WithRunner(r))

	require.NoError(t, s.SetField(context.Background(), "u-1", "sortOrder", -0.5))
	require.NoError(t, s.ClearField(context.Background(), "u-1", "sortOrder"))
	assert.Equal(t, []string{
		"task rc.confirmation=off rc.verbose=nothing u-1 modify sortOrder:-0.5",
		"task rc.confirmation=off rc.verbose=nothing u-1 modify sortOrder:",
	}, r.calls)
}

func TestTaskwarrior_SetFieldFailure(t *testing.T) {
	s := NewTaskwarrior(WithRunner(&fakeRunner{err: errors.New("exit status 1")}))
	err := s.SetField(context.Background(), "u-1", "sortOrder", 1)
	assert.ErrorIs(t, err, ErrMutationFailed)
}

func TestTaskwarrior_EmptyUUID(t *testing.T) {
	r := &fakeRunner{}
	s := NewTaskwarrior(WithRunner(r))
	assert.ErrorIs(t, s.ClearField(context.Background(), "", "sortOrder"), ErrMutationFailed)
	assert.Empty(t, r.calls)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1", FormatValue(1))
	assert.Equal(t, "-3", FormatValue(-3))
	assert.Equal(t, "0.25", FormatValue(0.25))
	assert.Equal(t, "100000000000000000000", FormatValue(1e20))
}
