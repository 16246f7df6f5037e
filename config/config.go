package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrInvalidIndent = errors.New("indent must not contain line breaks")

// ConfigFiles are searched for, in order, from the working directory upwards.
var ConfigFiles = []string{"fstree.toml", ".fstree.toml"}

// Config holds the options shared by every command.
type Config struct {
	Indent           string   `mapstructure:"indent" toml:"indent,omitempty"`
	LegacyIndent     bool     `mapstructure:"legacy-indent" toml:"legacy-indent,omitempty"`
	Quiet            bool     `mapstructure:"quiet" toml:"quiet,omitempty"`
	Stats            bool     `mapstructure:"stats" toml:"stats,omitempty"`
	Store            string   `mapstructure:"store" toml:"store,omitempty"`
	TreeFiles        []string `mapstructure:"tree-file" toml:"tree-file,omitempty"`
	Verbose          uint8    `mapstructure:"verbose" toml:"verbose,omitempty"`
	WorkingDirectory string   `mapstructure:"working-dir" toml:"-"`
}

// SetFlags appends our flags to the provided flag set.
// Each flag's name matches the mapstructure tag of the corresponding field in Config, and its default value is
// used when the config file and environment do not provide one.
func SetFlags(fs *pflag.FlagSet) {
	fs.String(
		"indent", "   ",
		"The string repeated once per level of depth when printing. (env $FSTREE_INDENT)",
	)
	fs.Bool(
		"legacy-indent", false,
		"Never restore the indentation after leaving a folder, so that later siblings are indented further. "+
			"Reproduces older listings. (env $FSTREE_LEGACY_INDENT)",
	)
	fs.BoolP(
		"quiet", "q", false,
		"Only log errors. (env $FSTREE_QUIET)",
	)
	fs.Bool(
		"stats", false,
		"Print the number of visited elements by kind. (env $FSTREE_STATS)",
	)
	fs.String(
		"store", "",
		"Path of the snapshot database (defaults to $XDG_DATA_HOME/fstree/snapshots.db). (env $FSTREE_STORE)",
	)
	fs.StringSliceP(
		"tree-file", "t", nil,
		"TOML files describing the trees to operate on. Defaults to the built-in demo tree. (env $FSTREE_TREE_FILE)",
	)
	fs.CountP(
		"verbose", "v",
		"Set the verbosity of logs e.g. -vv. (env $FSTREE_VERBOSE)",
	)
	fs.StringP(
		"working-dir", "C", ".",
		"Run as if fstree was started in the specified working directory instead of the current working "+
			"directory. (env $FSTREE_WORKING_DIR)",
	)
}

// NewViper creates a Viper instance pre-configured with the following options:
// * TOML config type
// * automatic env enabled
// * `FSTREE_` env prefix for environment variables
// * replacement of `-` and `.` with `_` when mapping flags to env e.g. `legacy-indent` => `FSTREE_LEGACY_INDENT`.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetConfigType("toml")

	v.SetEnvPrefix("fstree")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	return v
}

// FromViper takes a viper instance and produces a Config instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var err error

	cfg := &Config{}

	if err = v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// resolve the working directory to an absolute path
	cfg.WorkingDirectory, err = filepath.Abs(cfg.WorkingDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for working directory: %w", err)
	}

	if strings.ContainsAny(cfg.Indent, "\r\n") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIndent, cfg.Indent)
	}

	l := log.WithPrefix("config")
	l.Debugf("tree files = %v", cfg.TreeFiles)

	return cfg, nil
}

// FindUp searches for one of fileNames in searchDir and each of its parents.
func FindUp(searchDir string, fileNames ...string) (path string, dir string, err error) {
	for _, dir := range eachDir(searchDir) {
		for _, f := range fileNames {
			path := filepath.Join(dir, f)
			if fileExists(path) {
				return path, dir, nil
			}
		}
	}

	return "", "", fmt.Errorf("could not find %s in %s", fileNames, searchDir)
}

func eachDir(path string) (paths []string) {
	path, err := filepath.Abs(path)
	if err != nil {
		return
	}

	paths = []string{path}

	if path == "/" {
		return
	}

	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == os.PathSeparator {
			path = path[:i]
			if path == "" {
				path = "/"
			}

			paths = append(paths, path)
		}
	}

	return
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}
