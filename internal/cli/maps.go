package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/mapfile"
	"github.com/matzehuels/pathmaker/pkg/pathgraph"
	"github.com/matzehuels/pathmaker/pkg/store"
)

// stdinArg names standard input as a map source.
const stdinArg = "-"

// loadMap resolves a map argument: "-" reads standard input, an existing
// file is imported, anything else is looked up in the store. It returns
// the bundle and a display name.
func (c *CLI) loadMap(cmd *cobra.Command, arg string) (*pathgraph.Bundle, string, error) {
	if arg == stdinArg {
		b, err := mapfile.Read(cmd.InOrStdin())
		return b, "stdin", err
	}
	if fi, err := os.Stat(arg); err == nil && fi.Mode().IsRegular() {
		b, err := mapfile.ImportFile(arg)
		return b, arg, err
	}

	ctx := cmd.Context()
	st, err := c.mapStore(ctx)
	if err != nil {
		return nil, "", err
	}
	defer st.Close()

	name, err := errors.NormalizeMapName(arg)
	if err != nil {
		return nil, "", err
	}
	b, err := store.Load(ctx, st, name)
	return b, name, err
}

// saveMap stores b under name and reports where it went.
func (c *CLI) saveMap(ctx context.Context, cmd *cobra.Command, name string, b *pathgraph.Bundle) error {
	st, err := c.mapStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	name, err = store.Save(ctx, st, name, b)
	if err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Saved %s", name)
	printDetail(cmd.OutOrStdout(), "store: %s", st.Backend())
	return nil
}

func (c *CLI) lsCommand() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List stored maps",
		Args:    cobra.NoArgs,
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
				return nil
			}
			for _, name := range names {
				if !long {
					fmt.Fprintln(w, name)
					continue
				}
				b, err := store.Load(ctx, st, name)
				if err != nil {
					fmt.Fprintf(w, "%-32s %s\n", name, StyleWarning.Render(string(errors.GetCode(err))))
					continue
				}
				fmt.Fprintf(w, "%-32s %s\n", name, StyleDim.Render(fmt.Sprintf(
					"%d paths · %d waypoints · %d bytes", b.Len(), b.WaypointCount(), mapfile.Size(b))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "load each map and show its size")
	return cmd
}

func (c *CLI) rmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "rm NAME...",
		Short:             "Remove stored maps",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeMapNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.mapStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			var failed int
			for _, arg := range args {
				name, err := store.Remove(ctx, st, arg)
				if err != nil {
					printError(cmd.OutOrStdout(), "%s: %s", arg, errors.UserMessage(err))
					failed++
					continue
				}
				printSuccess(cmd.OutOrStdout(), "Removed %s", name)
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeNotFound, "%d of %d maps not removed", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}
