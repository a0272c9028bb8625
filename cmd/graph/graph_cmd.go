package graph

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/LegacyCodeHQ/incfix/cmd/fix"
	"github.com/LegacyCodeHQ/incfix/internal/config"
	"github.com/LegacyCodeHQ/incfix/internal/includegraph"
	"github.com/LegacyCodeHQ/incfix/internal/logging"
	"github.com/LegacyCodeHQ/incfix/internal/rewrite"
	"github.com/spf13/cobra"
)

const (
	formatDOT    = "dot"
	formatCycles = "cycles"
)

type graphOptions struct {
	format      string
	generateURL bool
}

// Cmd represents the graph command.
var Cmd = NewCommand()

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	search := fix.NewOptions()
	opts := &graphOptions{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the include graph of a source tree",
		Long: `Print the include graph of a source tree.

Includes are resolved the way fix would resolve them, without rewriting any
file. Include cycles and includes that resolve to no header are reported too.

Examples:
  incfix graph --src ./src -I ./include
  incfix graph --src ./src -I ./include -f cycles
  incfix graph --src ./src -I ./include -u`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := search.Config(cmd.Flags())
			if err != nil {
				return err
			}
			log := logging.New(cmd.ErrOrStderr(), cfg.Verbose)
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, opts, log)
		},
	}

	search.BindFlags(cmd.Flags())
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, fmt.Sprintf("Output format (%s, %s)", formatDOT, formatCycles))
	cmd.Flags().BoolVarP(&opts.generateURL, "url", "u", false, "Print a GraphvizOnline URL instead of DOT")

	return cmd
}

// run builds the include graph described by cfg. DOT goes to out; in DOT mode
// cycles and unresolved includes are reported to errOut.
func run(ctx context.Context, out, errOut io.Writer, cfg config.Config, opts *graphOptions, log *slog.Logger) error {
	if opts.format != formatDOT && opts.format != formatCycles {
		return fmt.Errorf("unknown output format: %s (valid options: %s, %s)", opts.format, formatDOT, formatCycles)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The graph never touches the tree.
	cfg.RenameHPP = false
	cfg.DryRun = true

	resolver, _, err := fix.NewResolver(ctx, cfg, log)
	if err != nil {
		return err
	}

	source, err := filepath.Abs(cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to resolve source path: %w", err)
	}
	files, err := rewrite.Sources(ctx, source, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	g, err := includegraph.Build(files, source, resolver, nil)
	if err != nil {
		return fmt.Errorf("failed to build include graph: %w", err)
	}

	if opts.format == formatCycles {
		return printProblems(out, g)
	}

	var dot bytes.Buffer
	if err := g.WriteDOT(&dot); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}
	if opts.generateURL {
		fmt.Fprintln(out, generateGraphvizOnlineURL(dot.String()))
	} else {
		fmt.Fprint(out, dot.String())
	}

	return printProblems(errOut, g)
}

func printProblems(w io.Writer, g *includegraph.Graph) error {
	cycles, err := g.Cycles()
	if err != nil {
		return fmt.Errorf("failed to find cycles: %w", err)
	}

	for _, cycle := range cycles {
		fmt.Fprint(w, "cycle:")
		for _, file := range cycle {
			fmt.Fprintf(w, " %s", g.Label(file))
		}
		fmt.Fprintln(w)
	}
	for _, u := range g.Unresolved {
		fmt.Fprintf(w, "%s:%d: unresolved %q\n", g.Label(u.File), u.Line, u.Path)
	}
	return nil
}

// generateGraphvizOnlineURL creates a URL for GraphvizOnline with the DOT graph embedded
func generateGraphvizOnlineURL(dotGraph string) string {
	// Spaces as %20, not +
	encoded := url.PathEscape(dotGraph)
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", encoded)
}
