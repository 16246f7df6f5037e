package du

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/numtide/fstree/config"
	"github.com/numtide/fstree/visitor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "du",
		Short: "Print the size of every folder, computed from its current contents",
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

	sizer := visitor.NewSizer(cmd.OutOrStdout())

	for _, root := range trees {
		total, err := sizer.Size(root)
		if err != nil {
			return err //nolint:wrapcheck
		}

		// folder sizes are accumulated when elements are added, so they go stale if a child changes afterwards
		if total != root.Size() {
			log.Warnf("size of %s was %d when its contents were added, it is now %d", root.Name(), root.Size(), total)
		}
	}

	return nil
}
