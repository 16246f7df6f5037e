package find

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/numtide/fstree/config"
	"github.com/numtide/fstree/matcher"
	"github.com/numtide/fstree/visitor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type options struct {
	matchPath bool
	excludes  []string
	kinds     []string
}

func NewCommand(v *viper.Viper) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "find <pattern>",
		Short: "Print the paths of elements whose name matches a glob pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(v, cmd, args[0], opts)
		},
	}

	fs := cmd.Flags()
	fs.BoolVarP(
		&opts.matchPath, "path", "p", false,
		"Match the pattern against root-relative paths such as /tmp/file.txt instead of names.",
	)
	fs.StringSliceVarP(
		&opts.excludes, "exclude", "e", nil,
		"Skip elements whose root-relative path matches any of these globs.",
	)
	fs.StringSliceVarP(
		&opts.kinds, "kind", "k", nil,
		"Only report elements of these kinds. Possible values are <file|folder|link>.",
	)

	return cmd
}

func matchFn(pattern string, opts *options) (matcher.MatchFn, error) {
	field := matcher.Name
	if opts.matchPath {
		field = matcher.Path
	}

	include, err := matcher.NewGlobInclusion([]string{pattern}, field)
	if err != nil {
		return nil, fmt.Errorf("failed to create include matcher: %w", err)
	}

	exclude, err := matcher.NewGlobExclusion(opts.excludes, matcher.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create exclude matcher: %w", err)
	}

	kinds, err := matcher.NewKindFilter(opts.kinds)
	if err != nil {
		return nil, fmt.Errorf("failed to create kind matcher: %w", err)
	}

	return matcher.Combine([]matcher.MatchFn{include}, []matcher.MatchFn{exclude, kinds}), nil
}

func Run(v *viper.Viper, cmd *cobra.Command, pattern string, opts *options) error {
	cfg, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	match, err := matchFn(pattern, opts)
	if err != nil {
		return err
	}

	trees, err := cfg.Trees(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load trees: %w", err)
	}

	finder := visitor.NewFinder(match)
	count := 0

	for _, root := range trees {
		matches, err := finder.Find(root)
		if err != nil {
			return fmt.Errorf("failed to search tree: %w", err)
		}

		for _, path := range matches {
			if _, err = fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
				return fmt.Errorf("failed to write match: %w", err)
			}
		}

		count += len(matches)
	}

	log.Infof("found %d matches for %s", count, pattern)

	return nil
}
