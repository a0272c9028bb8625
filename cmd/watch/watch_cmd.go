package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/LegacyCodeHQ/incfix/cmd/fix"
	"github.com/LegacyCodeHQ/incfix/internal/config"
	"github.com/LegacyCodeHQ/incfix/internal/logging"
	"github.com/spf13/cobra"
)

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	search := fix.NewOptions()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Fix includes again whenever sources or headers change",
		Long: `Run fix once, then watch the source directory and the include paths and
run it again after every batch of changes to C or C++ files.

Since fix is idempotent, the writes of a run settle after one more pass.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := search.Config(cmd.Flags())
			if err != nil {
				return err
			}
			log := logging.New(cmd.ErrOrStderr(), cfg.Verbose)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return Run(ctx, cmd.OutOrStdout(), cfg, log)
		},
	}

	search.BindFlags(cmd.Flags())

	return cmd
}

// Run fixes the tree described by cfg and keeps doing so on every relevant
// change until ctx is done.
func Run(ctx context.Context, out io.Writer, cfg config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	runFix := func(ctx context.Context) {
		if _, err := fix.Run(ctx, out, cfg, log); err != nil && ctx.Err() == nil {
			log.Error("fix failed", "error", err)
		}
	}
	runFix(ctx)

	dirs := append([]string{cfg.Source}, cfg.IncludePaths...)
	dirs = append(dirs, cfg.SystemIncludePaths...)

	fmt.Fprintf(out, "Watching %d directories\n", len(dirs))
	fmt.Fprintf(out, "Press Ctrl+C to stop\n")

	return watchAndRerun(ctx, dirs, cfg.Exclude, runFix, log)
}
