// Package config loads the netplan-nm CLI configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/yaobinwen/netplan/pkg/generate"
	"github.com/yaobinwen/netplan/pkg/nmfile"
	"github.com/yaobinwen/netplan/pkg/store"
)

const (
	FileName         = "config.toml"
	DefaultRootDir   = "/"
	DefaultConfigDir = "etc/netplan"
)

// Config holds every setting the CLI reads from its configuration file.
type Config struct {
	RootDir             string        `toml:"root_dir"`
	ConfigDir           string        `toml:"config_dir"` // relative to RootDir
	SearchDirs          []string      `toml:"search_dirs"`
	ConnectionsDir      string        `toml:"connections_dir"`
	GenerateCommand     string        `toml:"generate_command"`
	GenerateAfterDelete bool          `toml:"generate_after_delete"`
	Logging             LoggingConfig `toml:"logging"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Verbose bool `toml:"verbose"`
	JSON    bool `toml:"json"`
}

// Error reports an unreadable or invalid configuration file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "config: " + e.Err.Error()
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RootDir:         DefaultRootDir,
		ConfigDir:       DefaultConfigDir,
		SearchDirs:      append([]string(nil), store.DefaultSearchDirs...),
		ConnectionsDir:  nmfile.DefaultConnectionsDir,
		GenerateCommand: generate.DefaultCommand,
	}
}

// SearchPaths returns the locations probed for a configuration file, in
// priority order.
func SearchPaths() []string {
	paths := []string{filepath.Join("/etc/netplan-nm", FileName)}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "netplan-nm", FileName))
	}
	return paths
}

// Load reads the configuration. An explicit path must exist; otherwise the
// first existing file from SearchPaths is used, and the defaults apply when
// there is none.
func Load(explicit string) (*Config, error) {
	if explicit != "" {
		return LoadFile(explicit)
	}
	for _, path := range SearchPaths() {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return Default(), nil
}

// LoadFile decodes path over the defaults. Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Path: path, Err: fmt.Errorf("not found: %w", err)}
		}
		return nil, &Error{Path: path, Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, &Error{Path: path, Err: fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))}
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be repaired by defaults.
func (c *Config) Validate() error {
	if c.RootDir == "" {
		return &Error{Path: c.Path, Err: errors.New("root_dir must not be empty")}
	}
	if c.ConfigDir == "" || filepath.IsAbs(c.ConfigDir) {
		return &Error{Path: c.Path, Err: fmt.Errorf("config_dir %q must be a relative path", c.ConfigDir)}
	}
	for _, dir := range c.SearchDirs {
		if dir == "" || filepath.IsAbs(dir) {
			return &Error{Path: c.Path, Err: fmt.Errorf("search_dirs entry %q must be a relative path", dir)}
		}
	}
	return nil
}

// OutputDir is the directory rendered documents are written to.
func (c *Config) OutputDir() (string, error) {
	dir, err := securejoin.SecureJoin(c.RootDir, c.ConfigDir)
	if err != nil {
		return "", &Error{Path: c.Path, Err: err}
	}
	return dir, nil
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// WriteDefault writes the default configuration to path, creating its
// directory.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := Default().Encode(file); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
