package cmd

import (
	"os"

	"github.com/anprojects-core/config"
	"github.com/anprojects-core/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:           "anprojects",
	Short:         "Construction project budget backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv()

		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded

		_, err = utils.InitLogger(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file (default: $CONFIG_FILE)")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, summaryCmd)
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		zap.L().Error("command failed", zap.Error(err))
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
