package cmd

import (
	"fmt"

	"github.com/rogersnm/focus/internal/id"
	"github.com/rogersnm/focus/internal/markdown"
	"github.com/rogersnm/focus/internal/ordering"
	"github.com/spf13/cobra"
)

func orderingOpts() []ordering.Option {
	return []ordering.Option{
		ordering.WithTag(cfg.Tag()),
		ordering.WithDryRun(dryRun),
	}
}

func planRows(plan []ordering.Mutation) [][]string {
	rows := make([][]string, len(plan))
	for i, m := range plan {
		short := m.ShortID
		if short == "" {
			short = "-"
		}
		to := markdown.RenderCleared()
		if !m.Clears() {
			to = markdown.RenderKey(m.To)
		}
		rows[i] = []string{short, id.Abbrev(m.UUID), m.Description, markdown.RenderKey(m.From), to}
	}
	return rows
}

// report prints the plan on a dry run, otherwise a one-line summary.
func report(cmd *cobra.Command, res ordering.Result) {
	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintln(out, markdown.RenderPlanTable(planRows(res.Planned)))
		return
	}
	if len(res.Planned) == 0 {
		fmt.Fprintln(out, "Nothing to change.")
		return
	}
	fmt.Fprintf(out, "Applied %d change(s).\n", res.Applied)
}

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Clear stray keys from unfocused tasks and renumber focused tasks 1..n",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := ordering.GarbageCollect(cmd.Context(), gw, orderingOpts()...)
		if err != nil {
			return err
		}
		report(cmd, res)
		return nil
	},
}

var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Renumber focused tasks 1..n, leaving unfocused tasks alone",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := ordering.Compact(cmd.Context(), gw, orderingOpts()...)
		if err != nil {
			return err
		}
		report(cmd, res)
		return nil
	},
}

type moveFunc func(cmd *cobra.Command, ref string) (ordering.Result, error)

func moveCmdRunE(move moveFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		res, err := move(cmd, args[0])
		if err != nil {
			return err
		}
		if !dryRun && res.Target != nil && len(res.Planned) > 0 && !res.Target.HasTag(cfg.Tag()) {
			logger.Warn("task is not focused; it will not be listed until tagged",
				"task", args[0], "tag", "+"+cfg.Tag())
		}
		report(cmd, res)
		return nil
	}
}

var prioritizeCmd = &cobra.Command{
	Use:     "prioritize <id>",
	Aliases: []string{"promote", "top"},
	Short:   "Move a task ahead of every focused task",
	Args:    cobra.ExactArgs(1),
	RunE: moveCmdRunE(func(cmd *cobra.Command, ref string) (ordering.Result, error) {
		return ordering.Promote(cmd.Context(), gw, ref, orderingOpts()...)
	}),
}

var deprioritizeCmd = &cobra.Command{
	Use:     "deprioritize <id>",
	Aliases: []string{"demote", "bottom"},
	Short:   "Move a task behind every focused task",
	Args:    cobra.ExactArgs(1),
	RunE: moveCmdRunE(func(cmd *cobra.Command, ref string) (ordering.Result, error) {
		return ordering.Demote(cmd.Context(), gw, ref, orderingOpts()...)
	}),
}

func init() {
	rootCmd.AddCommand(gcCmd)
	rootCmd.AddCommand(compactCmd)
	rootCmd.AddCommand(prioritizeCmd)
	rootCmd.AddCommand(deprioritizeCmd)
}
