package cmd_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/numtide/fstree/cmd"
	"github.com/numtide/fstree/config"
	"github.com/numtide/fstree/stats"
	"github.com/numtide/fstree/test"
	"github.com/stretchr/testify/require"
)

type options struct {
	args []string

	config struct {
		path  string
		value *config.Config
	}

	assertOut   func([]byte)
	assertLog   func([]byte)
	assertError func(error)
	assertStats func(*stats.Stats)
}

type option func(*options)

func withArgs(args ...string) option {
	return func(o *options) {
		o.args = args
	}
}

func withConfig(path string, cfg *config.Config) option {
	return func(o *options) {
		o.config.path = path
		o.config.value = cfg
	}
}

func withStats(t *testing.T, expected map[stats.Type]int32) option {
	t.Helper()

	return func(o *options) {
		o.assertStats = func(s *stats.Stats) {
			for k, v := range expected {
				require.Equal(t, v, s.Value(k))
			}
		}
	}
}

func withError(fn func(error)) option {
	return func(o *options) {
		o.assertError = fn
	}
}

func withNoError(t *testing.T) option {
	t.Helper()

	return func(o *options) {
		o.assertError = func(err error) {
			require.NoError(t, err)
		}
	}
}

func withOutput(fn func([]byte)) option {
	return func(o *options) {
		o.assertOut = fn
	}
}

func withLog(fn func([]byte)) option {
	return func(o *options) {
		o.assertLog = fn
	}
}

func fstree(
	t *testing.T,
	opt ...option,
) {
	t.Helper()

	// build options
	opts := &options{}
	for _, option := range opt {
		option(opts)
	}

	// default args if nil
	// we must pass an empty array otherwise cobra with use os.Args[1:]
	args := opts.args
	if args == nil {
		args = []string{}
	}

	// write config
	if opts.config.value != nil {
		test.WriteConfig(t, opts.config.path, opts.config.value)
	}

	t.Logf("fstree %s", strings.Join(args, " "))

	var stdout, stderr bytes.Buffer

	// route logs to the captured stderr, restoring the default afterwards
	defer log.SetOutput(os.Stderr)

	// run the command
	root, statz := cmd.NewRoot()

	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	// execute the command
	cmdErr := root.Execute()

	t.Log("\n" + stdout.String())
	t.Log("\n" + stderr.String())

	if opts.assertStats != nil {
		opts.assertStats(statz)
	}

	if opts.assertOut != nil {
		opts.assertOut(stdout.Bytes())
	}

	if opts.assertLog != nil {
		opts.assertLog(stderr.Bytes())
	}

	if opts.assertError != nil {
		opts.assertError(cmdErr)
	}
}
