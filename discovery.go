// FILE: lixenwraith/konf/discovery.go
package konf

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic config file discovery
type FileDiscoveryOptions struct {
	// Base name of config file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (in addition to defaults)
	Paths []string

	// Environment variable to check for explicit path
	EnvVar string

	// CLI flag to check (e.g., "--config" or "-c")
	CLIFlag string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml", ".json"},
		EnvVar:        envName(appName) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// WithFileDiscovery locates the config file when Build runs: an explicit CLI
// flag in the builder args wins, then the environment variable, then the
// first existing file in the search paths. The CLI flag is removed from the
// args so flag binding does not see it. Builder methods may be called in any
// order around it.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	b.discovery = &opts
	b.reserved = opts.EnvVar
	return b
}

// discover returns the config file and the remaining flag args.
func (b *Builder) discover() (string, []string) {
	opts := b.discovery
	if opts == nil {
		return b.file, b.args
	}

	if path, rest, ok := extractFlag(b.args, opts.CLIFlag); ok {
		return path, rest
	}

	if opts.EnvVar != "" {
		if path := b.env[opts.EnvVar]; path != "" {
			return path, b.args
		}
	}

	if path := DiscoverFile(*opts); path != "" {
		return path, b.args
	}

	// No file found is not an error - app can run with defaults/env
	return b.file, b.args
}

// DiscoverFile returns the first existing candidate file, or "".
func DiscoverFile(opts FileDiscoveryOptions) string {
	var searchPaths []string

	// Custom paths first
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	if opts.UseXDG {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.Name)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// extractFlag finds "flag value" or "flag=value" in args and returns the
// value plus the args without it.
func extractFlag(args []string, flag string) (string, []string, bool) {
	if flag == "" {
		return "", args, false
	}
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			rest := append(append([]string{}, args[:i]...), args[i+2:]...)
			return args[i+1], rest, true
		}
		if value, ok := strings.CutPrefix(arg, flag+"="); ok {
			rest := append(append([]string{}, args[:i]...), args[i+1:]...)
			return value, rest, true
		}
	}
	return "", args, false
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string) []string {
	var paths []string

	// XDG_CONFIG_HOME
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	// XDG_CONFIG_DIRS
	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		// Default system paths
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
