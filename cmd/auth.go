package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/genaichat/internal/auth"
	"github.com/ziadkadry99/genaichat/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect credentials for the text generation providers",
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which provider credentials are available",
	Long: `Checks Application Default Credentials (used by Vertex AI) and the API key
environment variables of the other providers.`,
	RunE: runAuthStatus,
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Println("Credential status:")
	if ts, err := auth.TokenSource(ctx); err != nil {
		fmt.Printf("  %-22s not available (%v)\n", "vertex (ADC)", err)
	} else if _, err := ts.Token(); err != nil {
		fmt.Printf("  %-22s found, token refresh failed (%v)\n", "vertex (ADC)", err)
	} else {
		fmt.Printf("  %-22s ok\n", "vertex (ADC)")
	}

	for _, p := range []config.ProviderType{config.ProviderGoogle, config.ProviderOpenAI, config.ProviderAnthropic} {
		envVar := config.APIKeyEnvVar(p)
		status := "not set"
		if os.Getenv(envVar) != "" {
			status = "set"
		}
		fmt.Printf("  %-22s %s\n", fmt.Sprintf("%s (%s)", p, envVar), status)
	}
	return nil
}

func init() {
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
