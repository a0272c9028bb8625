package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/LegacyCodeHQ/incfix/include"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file looked up in the source directory.
const FileName = ".incfix.toml"

var (
	ErrNoIncludePaths             = errors.New("no include paths given")
	ErrSourceNotSet               = errors.New("source directory not set")
	ErrSourceNotDir               = errors.New("source path is not a directory")
	ErrIncludePathNotDir          = errors.New("include path is not a directory")
	ErrSystemToUserRequiresSystem = errors.New("system-to-user requires process-system")
)

// Config describes one run of the include fixer.
type Config struct {
	Source             string   `toml:"source"`
	IncludePaths       []string `toml:"include_paths"`
	SystemIncludePaths []string `toml:"system_include_paths"`
	Exclude            []string `toml:"exclude"`

	Fuzzy              int  `toml:"fuzzy"`
	ProcessSystem      bool `toml:"process_system"`
	SystemToUser       bool `toml:"system_to_user"`
	UserToSystem       bool `toml:"user_to_system"`
	PreferRootRelative bool `toml:"prefer_root_relative"`

	RenameHPP    bool `toml:"rename_hpp"`
	DryRun       bool `toml:"dry_run"`
	Verbose      bool `toml:"verbose"`
	PerDirectory bool `toml:"per_directory"`
	Jobs         int  `toml:"jobs"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		Jobs: runtime.NumCPU(),
	}
}

// Load reads a TOML configuration file on top of base. Unknown keys are an
// error so that typos do not silently change behaviour.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := base
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Relative paths in a config file are relative to the file itself.
	dir := filepath.Dir(path)
	cfg.Source = resolveFrom(dir, cfg.Source)
	cfg.IncludePaths = resolveAllFrom(dir, cfg.IncludePaths)
	cfg.SystemIncludePaths = resolveAllFrom(dir, cfg.SystemIncludePaths)

	return cfg, nil
}

// Find returns the path of the configuration file in dir, if there is one.
func Find(dir string) (string, bool) {
	path := filepath.Join(dir, FileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Validate reports the first configuration problem. It is called before any
// file is read or written.
func (c Config) Validate() error {
	if len(c.IncludePaths) == 0 && len(c.SystemIncludePaths) == 0 {
		return ErrNoIncludePaths
	}
	for _, p := range append(append([]string(nil), c.IncludePaths...), c.SystemIncludePaths...) {
		if !isDir(p) {
			return fmt.Errorf("%w: %s", ErrIncludePathNotDir, p)
		}
	}

	if c.Source == "" {
		return ErrSourceNotSet
	}
	if !isDir(c.Source) {
		return fmt.Errorf("%w: %s", ErrSourceNotDir, c.Source)
	}

	if c.Fuzzy < 0 {
		return fmt.Errorf("fuzzy distance must not be negative, got %d", c.Fuzzy)
	}
	if c.SystemToUser && !c.ProcessSystem {
		return ErrSystemToUserRequiresSystem
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return nil
}

// Roots returns the search roots in configuration order: user include paths
// first, then system include paths.
func (c Config) Roots() ([]include.SearchRoot, error) {
	roots := make([]include.SearchRoot, 0, len(c.IncludePaths)+len(c.SystemIncludePaths))
	add := func(paths []string, system bool) error {
		for _, p := range paths {
			abs, err := filepath.Abs(p)
			if err != nil {
				return fmt.Errorf("failed to resolve include path %s: %w", p, err)
			}
			roots = append(roots, include.SearchRoot{Path: filepath.Clean(abs), System: system})
		}
		return nil
	}

	if err := add(c.IncludePaths, false); err != nil {
		return nil, err
	}
	if err := add(c.SystemIncludePaths, true); err != nil {
		return nil, err
	}
	return roots, nil
}

// Policy returns the resolution policy selected by the configuration.
func (c Config) Policy() include.Policy {
	return include.Policy{
		ProcessSystem:        c.ProcessSystem,
		SystemToUser:         c.SystemToUser,
		UserToSystem:         c.UserToSystem,
		PreferRelativeToRoot: c.PreferRootRelative,
	}
}

// Engine returns the resolver configuration. Headers next to the including
// file are probed on disk.
func (c Config) Engine() include.Config {
	return include.Config{
		Fuzzy:      c.Fuzzy,
		Policy:     c.Policy(),
		FileExists: fileExists,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func resolveFrom(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func resolveAllFrom(dir string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolveFrom(dir, p)
	}
	return out
}
