package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathmaker/pkg/editor"
	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/mapfile"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	from   string  // map to start from
	save   string  // store the result under this name
	output string  // export the result to this file, - for stdout
	scale  float64 // multiply every coordinate before output
}

func (c *CLI) drawCommand() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw SCRIPT",
		Short: "Replay a gesture script into a map",
		Long: `Replay a gesture script into a map.

A script has one touch event per line, times in milliseconds:

  down 100 100 0      # first tap on empty space
  up   100 100 50
  down 100 100 200    # second tap: new path rooted here
  move 140 100 260    # drag: waypoints every min_distance
  up   140 100 300

Without --save or --output the resulting map text is printed. --scale
resizes the finished map, for example to move between screen densities.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDraw(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "start from an existing map")
	cmd.Flags().StringVar(&opts.save, "save", "", "save the result to the store under this name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result to a file")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "scale factor applied to every coordinate")

	return cmd
}

func (c *CLI) runDraw(cmd *cobra.Command, script string, opts *drawOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	if opts.scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", opts.scale)
	}

	var events []editor.Event
	var err error
	if script == stdinArg {
		events, err = editor.ParseScript(cmd.InOrStdin())
	} else {
		var f *os.File
		if f, err = os.Open(script); err != nil {
			if os.IsNotExist(err) {
				return errors.Wrap(errors.ErrCodeNotFound, err, "script %s", script)
			}
			return errors.Wrap(errors.ErrCodeStorage, err, "open script %s", script)
		}
		events, err = editor.ParseScript(f)
		f.Close()
	}
	if err != nil {
		return err
	}
	logger.Debugf("Parsed %d events", len(events))

	eopts := editor.OptionsFromConfig(c.Config.Editor)
	eopts.Logger = logger
	s := editor.NewSession(eopts)
	if opts.from != "" {
		b, name, err := c.loadMap(cmd, opts.from)
		if err != nil {
			return err
		}
		s.SetBundle(b)
		logger.Infof("Starting from %s (%d paths)", name, b.Len())
	}

	counts, err := s.Replay(ctx, events)
	if err != nil {
		return err
	}
	b := s.Bundle()
	if opts.scale != 1 {
		b.Scale(opts.scale, opts.scale)
		logger.Debugf("Scaled map by %g", opts.scale)
	}
	logger.Infof("Replayed %d events: %d paths created, %d waypoints added, %d connects",
		len(events), counts[editor.ActionCreatePath], counts[editor.ActionExtend], counts[editor.ActionConnect])

	w := cmd.OutOrStdout()
	if opts.save == "" && opts.output == "" {
		fmt.Fprintln(w, mapfile.Encode(b))
		return nil
	}
	if opts.output != "" {
		if opts.output == stdinArg {
			fmt.Fprintln(w, mapfile.Encode(b))
		} else {
			if err := mapfile.ExportFile(b, opts.output); err != nil {
				return err
			}
			printFile(w, opts.output)
		}
	}
	if opts.save != "" {
		if err := c.saveMap(ctx, cmd, opts.save, b); err != nil {
			return err
		}
		printStats(w, b.Len(), b.WaypointCount(), b.EdgeCount())
		printNextStep(w, "Render it", appName+" render "+opts.save)
	}
	return nil
}
