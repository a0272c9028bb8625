package fix

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/LegacyCodeHQ/incfix/include"
	"github.com/LegacyCodeHQ/incfix/internal/config"
	"github.com/LegacyCodeHQ/incfix/internal/headers"
	"github.com/LegacyCodeHQ/incfix/internal/logging"
	"github.com/LegacyCodeHQ/incfix/internal/rewrite"
	"github.com/spf13/cobra"
)

// Cmd represents the fix command.
var Cmd = NewCommand()

// NewCommand returns a new fix command instance.
func NewCommand() *cobra.Command {
	opts := NewOptions()

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Rewrite #include directives so they resolve against the include paths",
		Long: `Rewrite #include directives so they resolve against the include paths.

Every header below the include paths is indexed first. Each include in the
source tree is then matched by filename, optionally with a fuzzy fallback, and
rewritten relative to the include path it resolves against.

Examples:
  incfix fix --src ./src -I ./include
  incfix fix --src ./src -I ./include --fuzzy 8 --dry-run
  incfix fix --src ./src -I ./include --isystem ./third_party --process-system --system-to-user
  incfix fix --src ./src -I ./include --rename-hpp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Config(cmd.Flags())
			if err != nil {
				return err
			}
			log := logging.New(cmd.ErrOrStderr(), cfg.Verbose)
			_, err = Run(cmd.Context(), cmd.OutOrStdout(), cfg, log)
			return err
		},
	}

	opts.BindFlags(cmd.Flags())

	return cmd
}

// Run performs one complete fix run: validate the configuration, index the
// headers, rewrite the sources and print the report to out.
func Run(ctx context.Context, out io.Writer, cfg config.Config, log *slog.Logger) (rewrite.Report, error) {
	if err := cfg.Validate(); err != nil {
		return rewrite.Report{}, err
	}

	resolver, renames, err := NewResolver(ctx, cfg, log)
	if err != nil {
		return rewrite.Report{}, err
	}

	source, err := filepath.Abs(cfg.Source)
	if err != nil {
		return rewrite.Report{}, fmt.Errorf("failed to resolve source path: %w", err)
	}
	files, err := rewrite.Sources(ctx, source, cfg.Exclude)
	if err != nil {
		return rewrite.Report{}, fmt.Errorf("failed to list sources: %w", err)
	}
	log.Info("rewriting sources", "source", source, "files", len(files), "dry_run", cfg.DryRun)

	report, err := rewrite.Run(ctx, files, rewrite.Options{
		Resolver: resolver,
		DryRun:   cfg.DryRun,
		Jobs:     cfg.Jobs,
		Log:      log,
	})
	if err != nil {
		return rewrite.Report{}, err
	}

	p := newPrinter(out, source, cfg.Verbose)
	p.renames(renames)
	p.report(report, cfg.PerDirectory, cfg.DryRun)

	return report, nil
}

// NewResolver indexes the configured roots, renaming headers to .hpp first
// when asked to, and returns a resolver over the finished index.
func NewResolver(ctx context.Context, cfg config.Config, log *slog.Logger) (*include.Resolver, []headers.Rename, error) {
	roots, err := cfg.Roots()
	if err != nil {
		return nil, nil, err
	}

	idx, err := headers.Build(ctx, roots, cfg.Exclude, log)
	if err != nil {
		return nil, nil, err
	}

	var renames []headers.Rename
	if cfg.RenameHPP {
		idx, renames, err = headers.RenameToHPP(idx, cfg.DryRun, log)
		if err != nil {
			return nil, nil, err
		}
	}

	return include.NewResolver(idx, cfg.Engine()), renames, nil
}
