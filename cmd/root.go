package cmd

import (
	"os"

	"github.com/LegacyCodeHQ/incfix/cmd/fix"
	"github.com/LegacyCodeHQ/incfix/cmd/graph"
	"github.com/LegacyCodeHQ/incfix/cmd/watch"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCommand()

// NewRootCommand returns the incfix command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "incfix",
		Short: "Repair #include directives after headers moved or were renamed",
		Long: `incfix indexes the headers below a set of include paths and rewrites the
#include directives of a C or C++ source tree so that every one of them
resolves against those paths again.

Use 'incfix --help' to see all available commands, or 'incfix <command> --help'
for detailed information about a specific command.`,
		Version:      version,
		SilenceUsage: true,
		Annotations:  map[string]string{"buildDate": buildDate, "commit": commit},
	}

	root.AddCommand(fix.NewCommand())
	root.AddCommand(graph.NewCommand())
	root.AddCommand(watch.NewCommand())

	// Customize version template to show additional build info
	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
