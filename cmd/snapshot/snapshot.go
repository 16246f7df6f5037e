package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/numtide/fstree/codec"
	"github.com/numtide/fstree/config"
	"github.com/numtide/fstree/store"
	"github.com/numtide/fstree/visitor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ErrSingleTree = errors.New("exactly one tree must be selected")

func NewCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save, print and manage named snapshots of trees",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "save <name>",
			Short: "Save the selected tree under a name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(v, cmd, func(cfg *config.Config, s *store.Store) error {
					return save(cfg, s, cmd, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Print a saved tree",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(v, cmd, func(cfg *config.Config, s *store.Store) error {
					return show(cfg, s, cmd, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "export <name>",
			Short: "Print a saved tree as a TOML tree file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(v, cmd, func(_ *config.Config, s *store.Store) error {
					snapshot, err := s.Get(args[0])
					if err != nil {
						return err //nolint:wrapcheck
					}

					return codec.Write(cmd.OutOrStdout(), snapshot.Root) //nolint:wrapcheck
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List saved snapshots",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withStore(v, cmd, func(_ *config.Config, s *store.Store) error {
					return list(s, cmd)
				})
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a saved snapshot",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(v, cmd, func(_ *config.Config, s *store.Store) error {
					return s.Delete(args[0]) //nolint:wrapcheck
				})
			},
		},
	)

	return cmd
}

func withStore(v *viper.Viper, cmd *cobra.Command, fn func(cfg *config.Config, s *store.Store) error) (err error) {
	cfg, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err //nolint:wrapcheck
	}

	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close snapshot store: %w", closeErr)
		}
	}()

	return fn(cfg, s)
}

func save(cfg *config.Config, s *store.Store, cmd *cobra.Command, name string) error {
	trees, err := cfg.Trees(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load trees: %w", err)
	}

	if len(trees) != 1 {
		return fmt.Errorf("%w: found %d", ErrSingleTree, len(trees))
	}

	snapshot, err := s.Save(name, trees[0])
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved snapshot %s\n", snapshot.Name)

	return err //nolint:wrapcheck
}

func show(cfg *config.Config, s *store.Store, cmd *cobra.Command, name string) error {
	root, err := s.Load(name)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return visitor.NewPrinter(cmd.OutOrStdout(), //nolint:wrapcheck
		visitor.WithIndent(cfg.Indent),
		visitor.WithLegacyIndent(cfg.LegacyIndent),
	).Print(root)
}

func list(s *store.Store, cmd *cobra.Command) error {
	snapshots, err := s.Snapshots()
	if err != nil {
		return err //nolint:wrapcheck
	}

	for _, snapshot := range snapshots {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", snapshot.Name, snapshot.Created.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}

	return nil
}
