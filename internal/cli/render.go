package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/pipeline"
	"github.com/matzehuels/familytower/pkg/render"
	"github.com/matzehuels/familytower/pkg/render/nodelink"
)

// defaultOutput is the base name of rendered files.
const defaultOutput = "family"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string          // output file (single format) or base path
	formats   []render.Format // output formats: svg, png, jpg, dot, json
	highlight string          // member whose path to the root is highlighted
	detailed  bool            // add bios to member labels
}

// renderCommand creates the render command for drawing the tree.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		opts       renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the family tree to SVG, PNG, JPG, DOT or JSON",
		Long: `Draw the family tree with Graphviz, keeping every member at its
remembered position. Rendered files are cached by the content of the diagram,
so rendering an unchanged tree again is instant.`,
		Example: `  familytower render
  familytower render -f svg,png -o docs/family
  familytower render --highlight user_1a2b3c4d --detailed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.formats = formats

			r, _, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()
			return runRender(cmd.Context(), r, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, jpg, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "highlight the path from this member to the root")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show bios in member labels")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to [svg].
func parseFormats(s string) ([]render.Format, error) {
	if s == "" {
		return []render.Format{render.FormatSVG}, nil
	}
	var formats []render.Format
	for _, part := range strings.Split(s, ",") {
		f, err := render.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// basePath derives the base output path from the output flag.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output string) string {
	if output == "" {
		return defaultOutput
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file a format is written to. A single format keeps
// an explicit output path as given.
func outputPath(opts *renderOpts, f render.Format) string {
	if len(opts.formats) == 1 && opts.output != "" && filepath.Ext(opts.output) != "" {
		return opts.output
	}
	return basePath(opts.output) + "." + string(f)
}

// runRender renders the current tree in every requested format.
func runRender(ctx context.Context, r *pipeline.Runner, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	if r.Tree.Len() == 0 {
		printInfo("The tree is empty, nothing to render")
		return nil
	}
	if opts.highlight != "" {
		if _, err := r.Tree.Member(opts.highlight); err != nil {
			return err
		}
	}

	prog := newProgress(logger)
	nopts := nodelink.Options{Detailed: opts.detailed}
	var (
		written []string
		hits    int
	)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	defer spinner.Stop()
	for _, f := range opts.formats {
		spinner.Update(fmt.Sprintf("Rendering %s...", f))
		data, hit, err := r.Render(ctx, opts.highlight, f, nopts)
		if err != nil {
			return err
		}

		path := outputPath(opts, f)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		prog.step("wrote file", "path", path, "bytes", len(data), "cached", hit)
		written = append(written, path)
		if hit {
			hits++
		}
	}
	spinner.Stop()

	printSuccess("Rendered %d file(s)", len(written))
	for _, p := range written {
		printFile(p)
	}
	printStats(r.Tree.Len(), 0, hits == len(written))
	prog.donef("Rendered %d file(s)", len(written))
	return nil
}
