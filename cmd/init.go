package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/genaichat/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize genaichat configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the chat app and generates a .genaichat.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		fmt.Printf("\nConfiguration written to %s (provider %s, model %s).\n", cfgFile, cfg.Provider, cfg.Model)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
