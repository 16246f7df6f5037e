package verify

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/numtide/fstree/config"
	"github.com/numtide/fstree/export"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ErrVerifyFailed = errors.New("tree did not materialise as expected")

func NewCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Recreate trees in an in-memory filesystem and check that every link resolves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(v, cmd)
		},
	}
}

func Run(v *viper.Viper, cmd *cobra.Command) error {
	cfg, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	trees, err := cfg.Trees(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load trees: %w", err)
	}

	failed := 0

	for _, root := range trees {
		fs := memfs.New()

		if err = export.Materialize(fs, root); err != nil {
			return fmt.Errorf("failed to materialise tree %s: %w", root.Name(), err)
		}

		problems, err := export.Verify(fs, root)
		if err != nil {
			return fmt.Errorf("failed to verify tree %s: %w", root.Name(), err)
		}

		for _, problem := range problems {
			log.Error(problem.String())
		}

		failed += len(problems)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d problems", ErrVerifyFailed, failed)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "verified %d trees\n", len(trees))

	return err //nolint:wrapcheck
}
