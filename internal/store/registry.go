package store

import (
	"fmt"
	"log/slog"

	"github.com/rogersnm/focus/internal/config"
)

// Open builds the Gateway selected by cfg.Backend. Its export is the whole
// active set: ordering operations rank across every focused task, so any
// narrowing for display happens on a separate view (see Narrow).
func Open(cfg *config.Config, dataDir string, log *slog.Logger) (Gateway, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.BackendName() {
	case config.BackendTaskwarrior:
		log.Debug("opening taskwarrior backend", "binary", cfg.TaskBinary())
		return NewTaskwarrior(
			WithBinary(cfg.TaskBinary()),
			WithFilter(cfg.TaskFilter()...),
			WithRunner(ExecRunner{Env: cfg.TaskEnv()}),
			WithLogger(log),
		), nil

	case config.BackendLocal:
		dir := cfg.LocalDir(dataDir)
		log.Debug("opening local backend", "dir", dir)
		return NewLocal(dir).WithLogger(log), nil

	case config.BackendCloud:
		log.Debug("opening cloud backend", "url", cfg.Cloud.URL)
		return NewCloudStore(cfg.Cloud.URL, cfg.Cloud.APIKey,
			WithRateLimit(cfg.Cloud.RequestsPerSecond),
			WithCloudLogger(log),
		), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// Narrow returns a copy of gw whose export also matches terms, for display
// only. Only taskwarrior understands filter terms; other gateways come back
// as is with ok false.
func Narrow(gw Gateway, terms []string) (view Gateway, ok bool) {
	tw, isTW := gw.(*TaskwarriorStore)
	if !isTW || len(terms) == 0 {
		return gw, false
	}
	cp := *tw
	cp.filter = append(append([]string{}, tw.filter...), terms...)
	return &cp, true
}
