package main

import (
	"github.com/spf13/cobra"

	"cityflow/simulator/config"
	"cityflow/simulator/log"
)

type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "simulator",
		Short:        "Traffic flow simulation backend for the cityflow map",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logLevel == "debug" {
				log.InitDevelopmentLogger()
				return nil
			}
			return log.InitProductionLogger(opts.logLevel)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "",
		"config file (YAML); environment variables take precedence")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newScenariosCmd(opts))
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadConfig(o.configFile)
}
