package cli

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/mapfile"
	"github.com/matzehuels/pathmaker/pkg/pathgraph"
)

func (c *CLI) showCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:               "show MAP",
		Short:             "Describe a map from the store, a file, or stdin (-)",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeMapNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, name, err := c.loadMap(cmd, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if raw {
				fmt.Fprintln(w, mapfile.Encode(b))
				return nil
			}

			fmt.Fprintln(w, StyleTitle.Render(name))
			printKeyValue(w, "paths", strconv.Itoa(b.Len()))
			printKeyValue(w, "waypoints", strconv.Itoa(b.WaypointCount()))
			printKeyValue(w, "edges", strconv.Itoa(b.EdgeCount()))
			printKeyValue(w, "bytes", strconv.Itoa(mapfile.Size(b)))
			if b.Len() > 0 {
				fmt.Fprintln(w)
				fmt.Fprintln(w, pathTable(b))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the encoded map text")
	return cmd
}

// pathTable renders one row per path: color, root, size, edges and how
// many waypoints are reachable from the root.
func pathTable(b *pathgraph.Bundle) string {
	rows := make([][]string, 0, b.Len())
	for i, p := range b.Paths() {
		root := "—"
		if r := p.Root(); r != nil {
			root = fmt.Sprintf("(%d,%d)", r.X, r.Y)
		}
		reach := "?"
		if ws, err := p.Reachable(); err == nil {
			reach = strconv.Itoa(len(ws))
		}
		rows = append(rows, []string{
			pathSwatch(i) + " " + strconv.Itoa(i),
			root,
			strconv.Itoa(p.Size()),
			strconv.Itoa(p.EdgeCount()),
			reach,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Path", "Root", "Waypoints", "Edges", "Reachable").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func (c *CLI) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "validate MAP...",
		Short:             "Check that maps decode and every edge resolves",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeMapNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			var failed int
			for _, arg := range args {
				b, name, err := c.loadMap(cmd, arg)
				if err == nil {
					err = b.Validate()
				}
				if err != nil {
					failed++
					printError(w, "%s", arg)
					printDetail(w, "%s", describeError(err))
					continue
				}
				printSuccess(w, "%s", name)
				printStats(w, b.Len(), b.WaypointCount(), b.EdgeCount())
				for i, p := range b.Paths() {
					if ws, _ := p.Reachable(); len(ws) < p.Size() {
						printWarning(w, "path %d: %d of %d waypoints unreachable from the root", i, p.Size()-len(ws), p.Size())
					}
				}
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeMalformedMap, "%d of %d maps invalid", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}

// describeError renders err for humans, with the byte offset for
// decoding failures.
func describeError(err error) string {
	var perr *mapfile.ParseError
	if stderrors.As(err, &perr) {
		return fmt.Sprintf("%s at byte %d: expected %s, found %s",
			errors.GetCode(err), perr.Offset, perr.Expected, perr.Found)
	}
	if code := errors.GetCode(err); code != "" {
		return fmt.Sprintf("%s: %s", code, errors.UserMessage(err))
	}
	return err.Error()
}
