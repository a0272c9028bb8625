package fix

import (
	"fmt"

	"github.com/LegacyCodeHQ/incfix/internal/config"
	"github.com/spf13/pflag"
)

// Options holds the search and policy flags shared by the commands that
// resolve includes.
type Options struct {
	configPath string
	values     config.Config
}

// NewOptions returns options with default flag values.
func NewOptions() *Options {
	return &Options{values: config.Default()}
}

// BindFlags registers the shared flags on flags.
func (o *Options) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.configPath, "config", "", fmt.Sprintf("Configuration file (default: <src>/%s when present)", config.FileName))
	flags.StringVarP(&o.values.Source, "src", "s", "", "Source directory whose includes are rewritten")
	flags.StringArrayVarP(&o.values.IncludePaths, "include-path", "I", nil, "Add a user include search path (cfr. gcc -Ipath)")
	flags.StringArrayVar(&o.values.SystemIncludePaths, "isystem", nil, "Add a system include search path (cfr. gcc -isystem)")
	flags.StringSliceVar(&o.values.Exclude, "exclude", nil, "Glob patterns of files to leave alone, relative to each scanned root (comma-separated)")
	flags.IntVar(&o.values.Fuzzy, "fuzzy", o.values.Fuzzy, "Maximal filename edit distance for fuzzy matches (0 disables)")
	flags.BoolVar(&o.values.ProcessSystem, "process-system", false, "Also rewrite #include <...> directives")
	flags.BoolVar(&o.values.SystemToUser, "system-to-user", false, "Turn <...> includes of user headers into \"...\" includes (requires --process-system)")
	flags.BoolVar(&o.values.UserToSystem, "user-to-system", false, "Turn \"...\" includes of system headers into <...> includes")
	flags.BoolVar(&o.values.PreferRootRelative, "prefer-root-relative", false, "Write headers next to the including file relative to an include path")
	flags.BoolVar(&o.values.RenameHPP, "rename-hpp", false, "Rename header files to .hpp before fixing includes")
	flags.BoolVarP(&o.values.DryRun, "dry-run", "n", false, "Report changes without writing any file")
	flags.BoolVarP(&o.values.Verbose, "verbose", "v", false, "Also report untouched includes and alternatives")
	flags.BoolVar(&o.values.PerDirectory, "per-dir", false, "Print statistics per source directory")
	flags.IntVarP(&o.values.Jobs, "jobs", "j", o.values.Jobs, "Number of files processed in parallel")
}

type overlay struct {
	flag  string
	apply func(dst *config.Config, src config.Config)
}

var overlays = []overlay{
	{"src", func(d *config.Config, s config.Config) { d.Source = s.Source }},
	{"include-path", func(d *config.Config, s config.Config) { d.IncludePaths = s.IncludePaths }},
	{"isystem", func(d *config.Config, s config.Config) { d.SystemIncludePaths = s.SystemIncludePaths }},
	{"exclude", func(d *config.Config, s config.Config) { d.Exclude = s.Exclude }},
	{"fuzzy", func(d *config.Config, s config.Config) { d.Fuzzy = s.Fuzzy }},
	{"process-system", func(d *config.Config, s config.Config) { d.ProcessSystem = s.ProcessSystem }},
	{"system-to-user", func(d *config.Config, s config.Config) { d.SystemToUser = s.SystemToUser }},
	{"user-to-system", func(d *config.Config, s config.Config) { d.UserToSystem = s.UserToSystem }},
	{"prefer-root-relative", func(d *config.Config, s config.Config) { d.PreferRootRelative = s.PreferRootRelative }},
	{"rename-hpp", func(d *config.Config, s config.Config) { d.RenameHPP = s.RenameHPP }},
	{"dry-run", func(d *config.Config, s config.Config) { d.DryRun = s.DryRun }},
	{"verbose", func(d *config.Config, s config.Config) { d.Verbose = s.Verbose }},
	{"per-dir", func(d *config.Config, s config.Config) { d.PerDirectory = s.PerDirectory }},
	{"jobs", func(d *config.Config, s config.Config) { d.Jobs = s.Jobs }},
}

// Config merges defaults, the configuration file and the flags that were set
// explicitly, in that order of precedence from lowest to highest.
func (o *Options) Config(flags *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()

	path := o.configPath
	if path == "" {
		dir := o.values.Source
		if dir == "" {
			dir = "."
		}
		if found, ok := config.Find(dir); ok {
			path = found
		}
	}
	if path != "" {
		loaded, err := config.Load(path, cfg)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	for _, ov := range overlays {
		if flags.Changed(ov.flag) {
			ov.apply(&cfg, o.values)
		}
	}

	return cfg, nil
}
