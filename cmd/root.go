package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/numtide/fstree/build"
	"github.com/numtide/fstree/cmd/du"
	"github.com/numtide/fstree/cmd/find"
	_init "github.com/numtide/fstree/cmd/init"
	"github.com/numtide/fstree/cmd/snapshot"
	"github.com/numtide/fstree/cmd/verify"
	"github.com/numtide/fstree/config"
	"github.com/numtide/fstree/stats"
	"github.com/numtide/fstree/visitor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRoot() (*cobra.Command, *stats.Stats) {
	var (
		fstreeInit bool
		configFile string
	)

	// create a viper instance for reading in config
	v := config.NewViper()

	// create a new stats instance
	statz := stats.New()

	// create our root command
	cmd := &cobra.Command{
		Use:          build.Name + " [tree-files...]",
		Short:        "Print in-memory trees of folders, files and links",
		Version:      build.Version,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return preRunE(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runE(v, &statz, cmd, args)
		},
	}

	// update version template
	cmd.SetVersionTemplate("fstree {{.Version}}\n")

	pfs := cmd.PersistentFlags()

	// add our config flags to the command's persistent flag set, making them available to sub commands
	config.SetFlags(pfs)

	// add a couple of special flags which don't have a corresponding entry in fstree.toml
	pfs.StringVar(
		&configFile, "config-file", "",
		"Load the config file from the given path (defaults to searching upwards for fstree.toml or "+
			".fstree.toml). (env $FSTREE_CONFIG)",
	)
	cmd.Flags().BoolVarP(
		&fstreeInit, "init", "i", false,
		"Create a sample tree.toml file in the current directory.",
	)

	// bind our command's flags to viper
	if err := v.BindPFlags(pfs); err != nil {
		cobra.CheckErr(fmt.Errorf("failed to bind global config to viper: %w", err))
	}

	cmd.AddCommand(
		find.NewCommand(v),
		du.NewCommand(v),
		verify.NewCommand(v),
		snapshot.NewCommand(v),
	)

	return cmd, &statz
}

func preRunE(v *viper.Viper, cmd *cobra.Command) error {
	flags := cmd.Flags()

	// change working directory if required
	workingDir, err := filepath.Abs(v.GetString("working-dir"))
	if err != nil {
		return fmt.Errorf("failed to get absolute path for working directory: %w", err)
	} else if err = os.Chdir(workingDir); err != nil {
		return fmt.Errorf("failed to change working directory: %w", err)
	}

	// use the path specified by the flag
	configFile, err := flags.GetString("config-file")
	if err != nil {
		return fmt.Errorf("failed to read config-file flag: %w", err)
	}

	// fallback to env
	if configFile == "" {
		configFile = os.Getenv("FSTREE_CONFIG")
	}

	// search up from the working directory, a config file is optional
	if configFile == "" {
		configFile, _, _ = config.FindUp(workingDir, config.ConfigFiles...)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file '%s': %w", configFile, err)
		}
	}

	// configure logging
	log.SetOutput(cmd.ErrOrStderr())
	log.SetReportTimestamp(false)

	if v.GetBool("quiet") {
		// if quiet, we only log errors
		log.SetLevel(log.ErrorLevel)
	} else {
		// otherwise, the verbose flag controls the log level
		switch v.GetInt("verbose") {
		case 0:
			log.SetLevel(log.WarnLevel)
		case 1:
			log.SetLevel(log.InfoLevel)
		default:
			log.SetLevel(log.DebugLevel)
		}
	}

	if configFile != "" {
		log.Debugf("using config file: %s", configFile)
	}

	return nil
}

func runE(v *viper.Viper, statz *stats.Stats, cmd *cobra.Command, args []string) error {
	// check if we are running the init command
	if doInit, err := cmd.Flags().GetBool("init"); err != nil {
		return fmt.Errorf("failed to read init flag: %w", err)
	} else if doInit {
		if err = _init.Run(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to run init command: %w", err)
		}

		return nil
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// positional arguments take precedence over configured tree files
	if len(args) > 0 {
		cfg.TreeFiles = args
	}

	trees, err := cfg.Trees(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load trees: %w", err)
	}

	out := cmd.OutOrStdout()

	printer := visitor.NewPrinter(out,
		visitor.WithIndent(cfg.Indent),
		visitor.WithLegacyIndent(cfg.LegacyIndent),
	)
	counter := visitor.NewCounter(statz)

	for _, root := range trees {
		if err = printer.Print(root); err != nil {
			return err //nolint:wrapcheck
		}

		if err = root.Accept(counter, 0); err != nil {
			return fmt.Errorf("failed to count elements: %w", err)
		}
	}

	log.Infof("printed %d trees", len(trees))

	if cfg.Stats {
		return statz.Print(out) //nolint:wrapcheck
	}

	return nil
}
