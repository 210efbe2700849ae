package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/genaichat/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "genaichat",
	Short: "Google Chat app backed by a generative model",
	Long: `genaichat answers Google Chat app events. Messages and slash commands
are sent to a generative model (Gemini by default); quick commands reply
with configured text.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(".env")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
