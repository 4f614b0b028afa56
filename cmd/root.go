package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/rogersnm/focus/internal/config"
	"github.com/rogersnm/focus/internal/repofile"
	"github.com/rogersnm/focus/internal/store"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	dataDir string
	verbose bool
	dryRun  bool
	cfg     *config.Config
	gw      store.Gateway
	logger  *slog.Logger

	// repoFilter narrows what list shows; ordering never sees it.
	repoFilter []string
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".focus")
	}
	return filepath.Join(home, ".focus")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// isConfigCmd reports whether cmd is `config` or one of its subcommands.
func isConfigCmd(cmd *cobra.Command) bool {
	for c := cmd; c.HasParent(); c = c.Parent() {
		if c.Name() == "config" && !c.Parent().HasParent() {
			return true
		}
	}
	return false
}

var rootCmd = &cobra.Command{
	Use:     "focus",
	Short:   "Manual priority ordering for taskwarrior tasks",
	Long:    "focus keeps a hand-picked set of tasks, marked with a tag, in an explicit order stored in each task's sortOrder attribute.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd)

		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// Config commands work without a reachable store
		if isConfigCmd(cmd) {
			return nil
		}

		repoFilter = nil
		if cwd, err := os.Getwd(); err == nil {
			terms, dir, err := repofile.Find(cwd)
			if err != nil {
				return err
			}
			if len(terms) > 0 {
				logger.Debug("using repo filter", "file", filepath.Join(dir, repofile.FileName), "terms", terms)
				repoFilter = terms
			}
		}

		gw, err = store.Open(cfg, dataDir, logger)
		return err
	},
	SilenceUsage: true,
}

func init() {
	cobra.EnablePrefixMatching = true

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log store invocations to stderr")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "print planned changes without writing them")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"gc": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Number of changes applied, or the planned changes as a table with --dry-run",
				},
				Examples: []mtp.Example{
					{Description: "Drop stray keys and renumber focused tasks 1..n", Command: "focus gc"},
					{Description: "Preview a garbage collection", Command: "focus gc --dry-run"},
				},
			},
			"compact": {
				Examples: []mtp.Example{
					{Description: "Renumber focused tasks without touching unfocused ones", Command: "focus compact"},
				},
			},
			"prioritize": {
				Examples: []mtp.Example{
					{Description: "Move task 12 to the front of the focus list", Command: "focus prioritize 12"},
					{Description: "Same, by uuid", Command: "focus promote 6fb2c1a0-3d7e-4f1b-9a3c-0e5d2b8f7c41"},
				},
			},
			"deprioritize": {
				Examples: []mtp.Example{
					{Description: "Move task 12 to the back of the focus list", Command: "focus deprioritize 12"},
				},
			},
			"list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of focused tasks in order with position, id, uuid, key and description",
				},
			},
			"show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Task header fields followed by annotations and notes rendered as markdown",
				},
				Examples: []mtp.Example{
					{Description: "Show task 3", Command: "focus show 3"},
				},
			},
			"add": {
				Stdin: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "Markdown notes stored with the task (local backend)",
				},
				Examples: []mtp.Example{
					{Description: "Add a focused task", Command: "focus add \"Write report\" --tag focus"},
					{Description: "Add a task with notes", Command: "echo '# Outline' | focus add \"Write report\" --tag focus"},
				},
			},
			"done": {
				Examples: []mtp.Example{
					{Description: "Complete task 2 (local backend)", Command: "focus done 2"},
				},
			},
			"link": {
				Examples: []mtp.Example{
					{Description: "List only one project's focused tasks inside this directory", Command: "focus link project:website"},
				},
			},
			"unlink": {
				Examples: []mtp.Example{
					{Description: "Remove the directory filter", Command: "focus unlink"},
				},
			},
			"config show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Active backend and its settings",
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func Execute() error {
	return rootCmd.Execute()
}
