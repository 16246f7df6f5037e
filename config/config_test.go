package config_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/numtide/fstree/config"
	"github.com/numtide/fstree/test"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.SetFlags(fs)
	require.NoError(t, fs.Parse(args))

	v := config.NewViper()
	require.NoError(t, v.BindPFlags(fs))

	return config.FromViper(v)
}

func TestDefaults(t *testing.T) {
	as := require.New(t)

	cfg, err := newConfig(t)
	as.NoError(err)

	as.Equal("   ", cfg.Indent)
	as.False(cfg.LegacyIndent)
	as.False(cfg.Stats)
	as.False(cfg.Quiet)
	as.Equal(uint8(0), cfg.Verbose)
	as.Empty(cfg.TreeFiles)
	as.True(filepath.IsAbs(cfg.WorkingDirectory))
}

func TestFlagsAndEnv(t *testing.T) {
	as := require.New(t)

	cfg, err := newConfig(t, "--indent=--", "--legacy-indent", "-vv", "-t", "a.toml", "-t", "b.toml")
	as.NoError(err)
	as.Equal("--", cfg.Indent)
	as.True(cfg.LegacyIndent)
	as.Equal(uint8(2), cfg.Verbose)
	as.Equal([]string{"a.toml", "b.toml"}, cfg.TreeFiles)

	t.Setenv("FSTREE_LEGACY_INDENT", "true")
	t.Setenv("FSTREE_STATS", "true")
	t.Setenv("FSTREE_STORE", "/tmp/snapshots.db")

	cfg, err = newConfig(t)
	as.NoError(err)
	as.True(cfg.LegacyIndent)
	as.True(cfg.Stats)
	as.Equal("/tmp/snapshots.db", cfg.Store)
}

func TestInvalidIndent(t *testing.T) {
	as := require.New(t)

	_, err := newConfig(t, "--indent", "a\nb")
	as.ErrorIs(err, config.ErrInvalidIndent)
}

func TestTrees(t *testing.T) {
	as := require.New(t)

	cfg, err := newConfig(t)
	as.NoError(err)

	// demo tree by default
	trees, err := cfg.Trees(context.Background())
	as.NoError(err)
	as.Len(trees, 1)
	as.Equal("/", trees[0].Name())
	as.Equal(int64(30), trees[0].Size())

	tempDir := test.TempExamples(t)
	cfg.TreeFiles = []string{test.Example(tempDir, "project")}

	trees, err = cfg.Trees(context.Background())
	as.NoError(err)
	as.Len(trees, 1)
	as.Equal(int64(179), trees[0].Size())
}

func TestFindUp(t *testing.T) {
	as := require.New(t)

	tempDir := test.TempExamples(t)
	nested := filepath.Join(tempDir, "a", "b")

	as.NoError(mkdirAll(nested))

	path, dir, err := config.FindUp(nested, "demo.toml")
	as.NoError(err)
	as.Equal(filepath.Join(tempDir, "demo.toml"), path)
	as.Equal(tempDir, dir)

	_, _, err = config.FindUp(nested, "missing.toml")
	as.ErrorContains(err, "could not find")
}
