package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/focus/internal/config"
	"github.com/rogersnm/focus/internal/markdown"
	"github.com/rogersnm/focus/internal/repofile"
	"github.com/spf13/cobra"
)

// runSetupPrompt asks for a backend and its settings and saves them.
func runSetupPrompt(cmd *cobra.Command) error {
	backend := cfg.BackendName()
	err := huh.NewSelect[string]().
		Title("Where do your tasks live?").
		Options(
			huh.NewOption("Taskwarrior (task binary on PATH)", config.BackendTaskwarrior),
			huh.NewOption("Local markdown files in "+dataDir, config.BackendLocal),
			huh.NewOption("Hosted task API", config.BackendCloud),
		).
		Value(&backend).
		Run()
	if err != nil {
		return fmt.Errorf("selection cancelled")
	}

	next := *cfg
	next.Backend = backend
	if backend == config.BackendCloud {
		cloud := config.CloudConfig{}
		if cfg.Cloud != nil {
			cloud = *cfg.Cloud
		}
		if err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("API URL").Value(&cloud.URL),
			huh.NewInput().Title("API key").EchoMode(huh.EchoModePassword).Value(&cloud.APIKey),
		)).Run(); err != nil {
			return fmt.Errorf("input cancelled")
		}
		next.Cloud = &cloud
	}

	if err := config.Save(dataDir, &next); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	*cfg = next
	fmt.Fprintf(cmd.OutOrStdout(), "Backend set to %s\n", backend)
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Choose the task backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetupPrompt(cmd)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := []string{
			markdown.RenderField("Backend", cfg.BackendName()),
			markdown.RenderField("Focus tag", "+"+cfg.Tag()),
			markdown.RenderField("Data", dataDir),
		}
		switch cfg.BackendName() {
		case config.BackendTaskwarrior:
			fields = append(fields,
				markdown.RenderField("Binary", cfg.TaskBinary()),
				markdown.RenderField("Filter", strings.Join(cfg.TaskFilter(), " ")),
			)
			for _, env := range cfg.TaskEnv() {
				fields = append(fields, markdown.RenderField("Env", env))
			}
			if cwd, err := os.Getwd(); err == nil {
				if terms, dir, _ := repofile.Find(cwd); len(terms) > 0 {
					fields = append(fields, markdown.RenderField("Repo filter", strings.Join(terms, " ")+" (list only, from "+dir+")"))
				}
			}
		case config.BackendLocal:
			fields = append(fields, markdown.RenderField("Tasks", cfg.LocalDir(dataDir)))
		case config.BackendCloud:
			fields = append(fields,
				markdown.RenderField("URL", cfg.Cloud.URL),
				markdown.RenderField("API key", cfg.Cloud.APIKey[:min(8, len(cfg.Cloud.APIKey))]+"..."),
			)
			if cfg.Cloud.RequestsPerSecond > 0 {
				fields = append(fields, markdown.RenderField("Rate limit", strconv.FormatFloat(cfg.Cloud.RequestsPerSecond, 'f', -1, 64)+"/s"))
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), markdown.RenderEntityHeader("focus configuration", fields))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
