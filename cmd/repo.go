package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/focus/internal/repofile"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link [filter-term...]",
	Short: "Limit what list shows to extra taskwarrior filter terms inside the current directory",
	Long: `Limit what list shows to extra taskwarrior filter terms inside the current directory.

The terms only narrow the listing. Sort keys are always computed across the
whole configured working set, so positions stay global.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		terms := args
		if len(terms) == 0 {
			var input string
			if err := huh.NewInput().
				Title("Filter terms").
				Description("Used by list only, e.g. project:website").
				Value(&input).
				Run(); err != nil {
				return fmt.Errorf("input cancelled")
			}
			terms = strings.Fields(input)
		}
		if len(terms) == 0 {
			return fmt.Errorf("no filter terms given")
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := repofile.Write(cwd, terms); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Linked %s: %s\n", repofile.FileName, strings.Join(terms, " "))
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove the directory filter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		_, found, err := repofile.Read(cwd)
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintln(cmd.OutOrStdout(), "No filter linked.")
			return nil
		}
		if err := repofile.Remove(cwd); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Unlinked filter.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
}
