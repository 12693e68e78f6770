package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathmaker/pkg/mapfile"
	"github.com/matzehuels/pathmaker/pkg/store"
)

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse stored maps interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.mapStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.List(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(names) == 0 {
				printInfo(w, "No maps in %s", st.Backend())
				printNextStep(w, "Draw one", appName+" draw SCRIPT --save NAME")
				return nil
			}

			model := NewBrowseModel(st.Backend(), names, summaryLoader(ctx, st))
			final, err := tea.NewProgram(model,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(w),
			).Run()
			if err != nil {
				return err
			}

			if m, ok := final.(BrowseModel); ok && m.Selected != "" {
				printSuccess(w, "%s", m.Selected)
				printNextStep(w, "Show it", appName+" show "+m.Selected)
				printNextStep(w, "Render it", appName+" render "+m.Selected)
			}
			return nil
		},
	}
}

func summaryLoader(ctx context.Context, st store.Store) func(string) (mapSummary, error) {
	return func(name string) (mapSummary, error) {
		b, err := store.Load(ctx, st, name)
		if err != nil {
			return mapSummary{}, err
		}
		return mapSummary{
			Paths:     b.Len(),
			Waypoints: b.WaypointCount(),
			Edges:     b.EdgeCount(),
			Bytes:     mapfile.Size(b),
		}, nil
	}
}
