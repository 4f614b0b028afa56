package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rogersnm/focus/internal/model"
)

const DefaultTaskBinary = "task"

// DefaultFilter selects the pending working set.
var DefaultFilter = []string{"+PENDING"}

// TaskwarriorStore implements Gateway by shelling out to the taskwarrior CLI.
type TaskwarriorStore struct {
	binary string
	filter []string
	runner Runner
	log    *slog.Logger
}

// compile-time check
var _ Gateway = (*TaskwarriorStore)(nil)

type TaskwarriorOption func(*TaskwarriorStore)

func WithBinary(binary string) TaskwarriorOption {
	return func(s *TaskwarriorStore) {
		if binary != "" {
			s.binary = binary
		}
	}
}

// WithFilter replaces the export filter. An empty filter keeps the default.
func WithFilter(terms ...string) TaskwarriorOption {
	return func(s *TaskwarriorStore) {
		if len(terms) > 0 {
			s.filter = terms
		}
	}
}

func WithRunner(r Runner) TaskwarriorOption {
	return func(s *TaskwarriorStore) {
		s.runner = r
	}
}

func WithLogger(l *slog.Logger) TaskwarriorOption {
	return func(s *TaskwarriorStore) {
		if l != nil {
			s.log = l
		}
	}
}

func NewTaskwarrior(opts ...TaskwarriorOption) *TaskwarriorStore {
	s := &TaskwarriorStore{
		binary: DefaultTaskBinary,
		filter: DefaultFilter,
		runner: ExecRunner{},
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Filter returns the terms passed to `task export`.
func (s *TaskwarriorStore) Filter() []string {
	return s.filter
}

// baseArgs keeps taskwarrior from prompting or printing chatter around the output.
func baseArgs() []string {
	return []string{"rc.confirmation=off", "rc.verbose=nothing"}
}

func (s *TaskwarriorStore) Export(ctx context.Context) ([]model.Item, error) {
	args := append(baseArgs(), "rc.json.array=on")
	args = append(args, s.filter...)
	args = append(args, "export")

	s.log.Debug("exporting tasks", "binary", s.binary, "filter", strings.Join(s.filter, " "))
	stdout, stderr, err := s.runner.Run(ctx, s.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s export: %v%s", ErrUnavailable, s.binary, err, stderrSuffix(stderr))
	}

	trimmed := strings.TrimSpace(string(stdout))
	if trimmed == "" {
		return nil, nil
	}
	var items []model.Item
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, fmt.Errorf("%w: parsing %s export output: %v", ErrUnavailable, s.binary, err)
	}
	s.log.Debug("exported tasks", "count", len(items))
	return items, nil
}

func (s *TaskwarriorStore) SetField(ctx context.Context, uuid, field string, value float64) error {
	return s.modify(ctx, uuid, field+":"+FormatValue(value))
}

func (s *TaskwarriorStore) ClearField(ctx context.Context, uuid, field string) error {
	return s.modify(ctx, uuid, field+":")
}

func (s *TaskwarriorStore) modify(ctx context.Context, uuid, assignment string) error {
	if uuid == "" {
		return fmt.Errorf("%w: empty uuid", ErrMutationFailed)
	}
	args := append(baseArgs(), uuid, "modify", assignment)

	s.log.Debug("modifying task", "uuid", uuid, "assignment", assignment)
	_, stderr, err := s.runner.Run(ctx, s.binary, args...)
	if err != nil {
		return fmt.Errorf("%w: %s %s modify %s: %v%s", ErrMutationFailed, s.binary, uuid, assignment, err, stderrSuffix(stderr))
	}
	return nil
}

// FormatValue renders a key the way taskwarrior's numeric UDAs accept it:
// the shortest decimal that round-trips, without an exponent.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stderrSuffix(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return ""
	}
	return ": " + msg
}
