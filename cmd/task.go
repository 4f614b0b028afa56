package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rogersnm/focus/internal/editor"
	"github.com/rogersnm/focus/internal/id"
	"github.com/rogersnm/focus/internal/markdown"
	"github.com/rogersnm/focus/internal/model"
	"github.com/rogersnm/focus/internal/ordering"
	"github.com/rogersnm/focus/internal/store"
	"github.com/spf13/cobra"
)

// localStore returns the gateway as a LocalStore for commands that manage
// tasks directly; taskwarrior and the cloud API have their own tools for that.
func localStore(cmd *cobra.Command) (*store.LocalStore, error) {
	ls, ok := gw.(*store.LocalStore)
	if !ok {
		return nil, fmt.Errorf("%s needs the local backend (current backend: %s)", cmd.Name(), cfg.BackendName())
	}
	return ls, nil
}

func keyText(it *model.Item) string {
	if !it.HasField(ordering.SortOrderField) {
		return "-"
	}
	k, err := ordering.Key(it)
	if err != nil {
		v, _ := it.Field(ordering.SortOrderField)
		return fmt.Sprintf("%v (invalid)", v)
	}
	return markdown.RenderKey(&k)
}

// listedUUIDs returns the uuids matched by the repo filter, or nil when every
// ranked task should be listed. Positions come from the global ranking either
// way.
func listedUUIDs(cmd *cobra.Command) (map[string]bool, error) {
	view, ok := store.Narrow(gw, repoFilter)
	if !ok {
		if len(repoFilter) > 0 {
			logger.Warn("repo filter ignored; backend does not take filter terms", "backend", cfg.BackendName())
		}
		return nil, nil
	}
	items, err := view.Export(cmd.Context())
	if err != nil {
		return nil, err
	}
	shown := make(map[string]bool, len(items))
	for _, it := range items {
		shown[it.UUID] = true
	}
	return shown, nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List focused tasks in priority order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := gw.Export(cmd.Context())
		if err != nil {
			return err
		}
		entries, err := ordering.Rank(items, ordering.WithTag(cfg.Tag()))
		if err != nil {
			return err
		}

		shown, err := listedUUIDs(cmd)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(entries))
		for i, e := range entries {
			if shown != nil && !shown[e.Item.UUID] {
				continue
			}
			short, ok := e.Item.ShortID()
			if !ok {
				short = "-"
			}
			key := "-"
			if e.Present {
				key = markdown.RenderKey(&e.Key)
			}
			rows = append(rows, []string{strconv.Itoa(i + 1), short, id.Abbrev(e.Item.UUID), key, e.Item.Description})
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderFocusTable(rows))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := gw.Export(cmd.Context())
		if err != nil {
			return err
		}
		it, err := ordering.Find(items, args[0])
		if err != nil {
			return err
		}

		fields := []string{}
		if short, ok := it.ShortID(); ok {
			fields = append(fields, markdown.RenderField("ID", short))
		}
		fields = append(fields,
			markdown.RenderField("UUID", it.UUID),
			markdown.RenderField("Status", markdown.RenderStatus(string(it.Status))),
		)
		if len(it.Tags) > 0 {
			fields = append(fields, markdown.RenderField("Tags", markdown.RenderTags(it.Tags, cfg.Tag())))
		}
		fields = append(fields, markdown.RenderField("Key", keyText(it)))
		if it.Entry != "" {
			fields = append(fields, markdown.RenderField("Entered", it.Entry))
		}
		if it.Modified != "" {
			fields = append(fields, markdown.RenderField("Modified", it.Modified))
		}
		if it.Urgency != nil {
			fields = append(fields, markdown.RenderField("Urgency", strconv.FormatFloat(*it.Urgency, 'f', -1, 64)))
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, markdown.RenderEntityHeader(it.Description, fields))

		var md strings.Builder
		if len(it.Annotations) > 0 {
			md.WriteString("## Annotations\n\n")
			for _, a := range it.Annotations {
				fmt.Fprintf(&md, "- %s %s\n", a.Entry, a.Description)
			}
		}
		if ls, ok := gw.(*store.LocalStore); ok {
			if _, body, err := ls.Get(it.UUID); err == nil && body != "" {
				if md.Len() > 0 {
					md.WriteString("\n")
				}
				md.WriteString(body)
			}
		}
		if md.Len() > 0 {
			rendered, err := markdown.RenderMarkdown(md.String())
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		}
		return nil
	},
}

var addTags []string

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a task (local backend)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ls, err := localStore(cmd)
		if err != nil {
			return err
		}
		tags := make([]string, 0, len(addTags))
		for _, t := range addTags {
			if t = strings.TrimPrefix(strings.TrimSpace(t), "+"); t != "" {
				tags = append(tags, t)
			}
		}

		it, err := ls.Create(args[0], tags, readStdin(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s)\n", it.Description, id.Abbrev(it.UUID))
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed (local backend)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ls, err := localStore(cmd)
		if err != nil {
			return err
		}
		it, _, err := ls.Get(args[0])
		if err != nil {
			return err
		}
		if err := ls.SetStatus(it.UUID, model.StatusCompleted); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s\n", it.Description)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task file in $EDITOR (local backend)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ls, err := localStore(cmd)
		if err != nil {
			return err
		}
		it, _, err := ls.Get(args[0])
		if err != nil {
			return err
		}
		path := ls.ItemPath(it.UUID)
		if err := editor.Open(cmd.Context(), path); err != nil {
			return err
		}
		// Catch a broken frontmatter now rather than on the next export
		if _, _, err := store.ReadItem(path); err != nil {
			return fmt.Errorf("task file no longer parses: %w", err)
		}
		return nil
	},
}

func readStdin(cmd *cobra.Command) string {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return ""
		}
		// Only read if stdin is explicitly a pipe (not a terminal, not a socket)
		if info.Mode()&os.ModeNamedPipe == 0 && info.Size() == 0 {
			return ""
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return ""
	}
	return string(data)
}

func init() {
	addCmd.Flags().StringArrayVarP(&addTags, "tag", "t", nil, "tag to attach (repeatable)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(editCmd)
}
