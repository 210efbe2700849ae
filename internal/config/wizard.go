package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to genaichat! Let's configure your chat app.")
	fmt.Println()

	cfg := DefaultConfig()

	providerPrompt := promptui.Select{
		Label: "Select text generation provider",
		Items: []string{string(ProviderGoogle), string(ProviderOpenAI), string(ProviderAnthropic)},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	modelPrompt := promptui.Prompt{
		Label:   "Model",
		Default: DefaultModel(cfg.Provider),
	}
	if cfg.Model, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	cfg.UseVertexAI = false
	if cfg.Provider == ProviderGoogle {
		backendPrompt := promptui.Select{
			Label: "Google backend",
			Items: []string{
				"vertex: Vertex AI with Application Default Credentials",
				"gemini: Gemini Developer API with GOOGLE_API_KEY",
			},
		}
		idx, _, err := backendPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("backend selection: %w", err)
		}
		cfg.UseVertexAI = idx == 0
	}

	if cfg.UseVertexAI {
		projectPrompt := promptui.Prompt{
			Label:    "Google Cloud project",
			Default:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
			Validate: required,
		}
		if cfg.Project, err = projectPrompt.Run(); err != nil {
			return nil, fmt.Errorf("project: %w", err)
		}

		locationPrompt := promptui.Prompt{
			Label:    "Google Cloud location",
			Default:  cfg.Location,
			Validate: required,
		}
		if cfg.Location, err = locationPrompt.Run(); err != nil {
			return nil, fmt.Errorf("location: %w", err)
		}
	}

	commandsPrompt := promptui.Prompt{
		Label:   "Commands file (JSON object of command ID to text)",
		Default: cfg.CommandsFile,
	}
	if cfg.CommandsFile, err = commandsPrompt.Run(); err != nil {
		return nil, fmt.Errorf("commands file: %w", err)
	}

	instructionPrompt := promptui.Prompt{
		Label:   "System instruction file",
		Default: cfg.SystemInstructionFile,
	}
	if cfg.SystemInstructionFile, err = instructionPrompt.Run(); err != nil {
		return nil, fmt.Errorf("system instruction file: %w", err)
	}

	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validPort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !cfg.VertexAI() {
		if envVar := APIKeyEnvVar(cfg.Provider); os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running genaichat serve.\n", envVar)
		}
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func required(s string) error {
	if s == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func validPort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}
