package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/genaichat/internal/bots"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch [file|-]",
	Short: "Dispatch a single chat event locally and print the reply",
	Long: `Reads a Google Chat event JSON from a file (or stdin with "-" or no
argument), runs it through the dispatcher with the configured model and
prints the reply envelope. Logs go to stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg, os.Stderr)

		data, err := readEventInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		event, err := bots.DecodeEvent(data)
		if err != nil {
			return err
		}

		table, err := loadCommandTable(cfg)
		if err != nil {
			return fmt.Errorf("loading commands: %w", err)
		}
		ctx := context.Background()
		generator, err := createGeneratorFromConfig(ctx, cfg)
		if err != nil {
			return err
		}

		reply := bots.NewGateway(bots.NewProcessor(table, generator)).Dispatch(ctx, event)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reply)
	},
}

func readEventInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading event from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading event: %w", err)
	}
	return data, nil
}

func init() {
	rootCmd.AddCommand(dispatchCmd)
}
