package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/pathgraph"
	"github.com/matzehuels/pathmaker/pkg/render/nodelink"
)

const (
	formatSVG = "svg"
	formatDOT = "dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file, or base path for several formats
	formats    []string // "svg", "dot"
	labels     bool     // label waypoints with their ids
	scale      float64  // coordinate scale factor
	background string   // canvas color
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:               "render MAP",
		Short:             "Draw a map as SVG or Graphviz DOT",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeMapNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			b, name, err := c.loadMap(cmd, args[0])
			if err != nil {
				return err
			}
			return c.runRender(cmd, b, name, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label waypoints with their ids")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "coordinate scale factor")
	cmd.Flags().StringVar(&opts.background, "bg", "", "background color (default transparent)")

	return cmd
}

// parseFormats parses the --format flag. Empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

var validFormats = map[string]bool{formatSVG: true, formatDOT: true}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'svg' or 'dot')", f)
		}
	}
	return nil
}

// basePath derives the output path without extension. An empty output
// uses the map name; a known format extension on output is stripped.
func basePath(output, name string) string {
	if output == "" {
		return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func (c *CLI) runRender(cmd *cobra.Command, b *pathgraph.Bundle, name string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	dot, err := nodelink.ToDOT(b, nodelink.Options{
		Labels:     opts.labels,
		Scale:      opts.scale,
		Background: opts.background,
	})
	if err != nil {
		return err
	}
	logger.Debugf("Generated DOT: %d bytes", len(dot))

	base := basePath(opts.output, name)
	for _, format := range opts.formats {
		spin := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+name+" as "+format)
		spin.Start()
		data, err := renderFormat(ctx, dot, format)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}

		path := base + "." + format
		if opts.output == stdinArg {
			path = ""
		} else if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := writeOutput(cmd, path, data); err != nil {
			return err
		}
		if path != "" {
			printFile(cmd.OutOrStdout(), path)
		}
	}
	prog.done("Rendered " + name)
	return nil
}

func renderFormat(ctx context.Context, dot, format string) ([]byte, error) {
	switch format {
	case formatDOT:
		return []byte(dot), nil
	case formatSVG:
		return nodelink.RenderSVG(ctx, dot)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown format: %s", format)
	}
}

// writeOutput writes data to path, or to the command's stdout when path
// is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	var w io.Writer = cmd.OutOrStdout()
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "create %s", path)
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write output")
	}
	return nil
}
