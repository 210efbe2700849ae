package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var commandsCheck bool

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the configured app commands",
	Long:  `Loads the commands file from the config and prints each command ID with its text. With --check only validates the file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg, os.Stderr)

		table, err := loadCommandTable(cfg)
		if err != nil {
			return err
		}

		if commandsCheck {
			fmt.Printf("%s: %d commands OK\n", cfg.CommandsFile, table.Len())
			return nil
		}

		if table.Len() == 0 {
			fmt.Println("No commands configured.")
			return nil
		}
		for _, id := range table.IDs() {
			text := table.Lookup(id).OrEmpty()
			fmt.Printf("  %s\t%s\n", id, truncate(text, 80))
		}
		return nil
	},
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func init() {
	commandsCmd.Flags().BoolVar(&commandsCheck, "check", false, "Only validate the commands file")
	rootCmd.AddCommand(commandsCmd)
}
