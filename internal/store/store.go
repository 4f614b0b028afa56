package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rogersnm/focus/internal/id"
	"github.com/rogersnm/focus/internal/markdown"
	"github.com/rogersnm/focus/internal/model"
)

// LocalStore implements Gateway using markdown files on the local filesystem,
// one file per task with the record in YAML frontmatter.
type LocalStore struct {
	BaseDir string
	log     *slog.Logger
}

// compile-time check
var _ Gateway = (*LocalStore)(nil)

func NewLocal(baseDir string) *LocalStore {
	return &LocalStore{
		BaseDir: baseDir,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the logger used for debug output and returns s.
func (s *LocalStore) WithLogger(l *slog.Logger) *LocalStore {
	if l != nil {
		s.log = l
	}
	return s
}

func (s *LocalStore) ItemsDir() string {
	return filepath.Join(s.BaseDir, "items")
}

func (s *LocalStore) ItemPath(uuid string) string {
	return filepath.Join(s.ItemsDir(), uuid+".md")
}

func (s *LocalStore) WriteItem(it *model.Item, body string) error {
	data, err := markdown.EncodeItem(it, body)
	if err != nil {
		return err
	}
	path := s.ItemPath(it.UUID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating parent dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func ReadItem(path string) (model.Item, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Item{}, "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return markdown.DecodeItem(f)
}

// Create adds a pending task and returns it.
func (s *LocalStore) Create(description string, tags []string, body string) (*model.Item, error) {
	ts := now()
	it := &model.Item{
		UUID:        id.New(),
		Description: description,
		Entry:       ts,
		Modified:    ts,
		Status:      model.StatusPending,
		Tags:        tags,
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	if err := s.WriteItem(it, body); err != nil {
		return nil, fmt.Errorf("writing task: %w", err)
	}
	s.log.Debug("created task", "uuid", it.UUID)
	return it, nil
}

// Get resolves a uuid or short id and returns the task with its notes.
func (s *LocalStore) Get(ref string) (*model.Item, string, error) {
	if !id.IsUUID(ref) {
		n, err := id.ParseShort(ref)
		if err != nil {
			return nil, "", err
		}
		items, err := s.pending()
		if err != nil {
			return nil, "", err
		}
		if n > len(items) {
			return nil, "", fmt.Errorf("task %s not found", ref)
		}
		ref = items[n-1].UUID
	}

	it, body, err := ReadItem(s.ItemPath(ref))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("task %s not found", ref)
		}
		return nil, "", err
	}
	return &it, body, nil
}

// Export returns pending tasks ordered by entry time, with short ids 1..n
// assigned in that order the way taskwarrior numbers its working set.
func (s *LocalStore) Export(ctx context.Context) ([]model.Item, error) {
	items, err := s.pending()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.log.Debug("exported tasks", "dir", s.ItemsDir(), "count", len(items))
	return items, nil
}

func (s *LocalStore) pending() ([]model.Item, error) {
	files, err := filepath.Glob(filepath.Join(s.ItemsDir(), "*.md"))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", s.ItemsDir(), err)
	}

	var items []model.Item
	for _, f := range files {
		it, _, err := ReadItem(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filepath.Base(f), err)
		}
		if it.Status != model.StatusPending {
			continue
		}
		items = append(items, it)
	}

	slices.SortFunc(items, func(a, b model.Item) int {
		return cmp.Or(cmp.Compare(a.Entry, b.Entry), cmp.Compare(a.UUID, b.UUID))
	})
	for i := range items {
		n := i + 1
		items[i].ID = &n
	}
	return items, nil
}

func (s *LocalStore) SetField(ctx context.Context, uuid, field string, value float64) error {
	return s.update(uuid, func(it *model.Item) {
		it.SetField(field, value)
	})
}

func (s *LocalStore) ClearField(ctx context.Context, uuid, field string) error {
	return s.update(uuid, func(it *model.Item) {
		it.ClearField(field)
	})
}

// SetStatus changes a task's status; completing a task takes it out of the export.
func (s *LocalStore) SetStatus(uuid string, status model.Status) error {
	if err := model.ValidateStatus(status); err != nil {
		return err
	}
	return s.update(uuid, func(it *model.Item) {
		it.Status = status
	})
}

// SetTags replaces a task's tags.
func (s *LocalStore) SetTags(uuid string, tags []string) error {
	return s.update(uuid, func(it *model.Item) {
		it.Tags = tags
	})
}

func (s *LocalStore) update(uuid string, fn func(*model.Item)) error {
	path := s.ItemPath(uuid)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: task %s not found", ErrMutationFailed, uuid)
	}
	it, body, err := ReadItem(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}
	fn(&it)
	it.Modified = now()
	if err := s.WriteItem(&it, body); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrMutationFailed, uuid, err)
	}
	s.log.Debug("updated task", "uuid", uuid)
	return nil
}

// now is formatted like taskwarrior's entry and modified stamps.
func now() string {
	return time.Now().UTC().Format("20060102T150405Z")
}
