package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/infrastructure/config"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/infrastructure/logging"
)

// cliState carries what PersistentPreRunE resolved to the subcommands.
type cliState struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	st := &cliState{v: viper.New()}

	root := &cobra.Command{
		Use:   "meshflow",
		Short: "Derive flow links between adjacent cells of unstructured meshes",
		Long: "meshflow reads unstructured 2D meshes (.json, .msgpack or .mesh files), " +
			"derives a flow link for every edge shared by exactly two cells and " +
			"writes the result back.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWith(st.v, st.cfgFile)
			if err != nil {
				return err
			}
			st.cfg = cfg
			return logging.SetupWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&st.cfgFile, "config", "", "config file")
	flags.String("log-format", logging.FormatText, "logging format [text|json]")
	flags.String("log-level", zerolog.LevelInfoValue,
		fmt.Sprintf("logging level %s|%s|%s|%s",
			zerolog.LevelDebugValue,
			zerolog.LevelInfoValue,
			zerolog.LevelWarnValue,
			zerolog.LevelErrorValue,
		),
	)
	cobra.CheckErr(st.v.BindPFlag("log.format", flags.Lookup("log-format")))
	cobra.CheckErr(st.v.BindPFlag("log.level", flags.Lookup("log-level")))

	root.AddCommand(
		newVersionCmd(),
		newGridCmd(),
		newGenerateCmd(st),
		newLinksCmd(),
		newInfoCmd(),
	)
	return root
}
