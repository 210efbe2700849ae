package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ziadkadry99/genaichat/internal/commands"
	"github.com/ziadkadry99/genaichat/internal/config"
	"github.com/ziadkadry99/genaichat/internal/llm"
	"github.com/ziadkadry99/genaichat/internal/logger"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `genaichat init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogging installs the process logger; --verbose forces debug level.
func setupLogging(cfg *config.Config, w io.Writer) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger.Init(w, level, cfg.LogFormat)
}

// loadCommandTable loads the configured commands file. The default file is
// optional: when it does not exist the app runs without commands.
func loadCommandTable(cfg *config.Config) (*commands.Table, error) {
	if cfg.CommandsFile == "" {
		return commands.Empty(), nil
	}
	table, err := commands.Load(cfg.CommandsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && cfg.CommandsFile == config.DefaultCommandsFile {
			logger.L.Warn("Commands file not found, no app commands configured.", "path", cfg.CommandsFile)
			return commands.Empty(), nil
		}
		return nil, err
	}
	return table, nil
}

// loadSystemInstruction reads the system instruction, treating a missing
// default file as no instruction.
func loadSystemInstruction(cfg *config.Config) (string, error) {
	instruction, err := cfg.SystemInstruction()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && cfg.SystemInstructionFile == config.DefaultSystemInstructionFile {
			logger.L.Warn("System instruction file not found, generating without one.", "path", cfg.SystemInstructionFile)
			return "", nil
		}
		return "", err
	}
	return instruction, nil
}

// createGeneratorFromConfig builds the text generator the dispatcher uses.
func createGeneratorFromConfig(ctx context.Context, cfg *config.Config) (*llm.Generator, error) {
	provider, err := llm.NewProvider(ctx, llm.ProviderOptions{
		Provider: string(cfg.Provider),
		Model:    cfg.Model,
		VertexAI: cfg.VertexAI(),
		Project:  cfg.Project,
		Location: cfg.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	instruction, err := loadSystemInstruction(cfg)
	if err != nil {
		return nil, err
	}

	safety := make([]llm.SafetySetting, 0, len(cfg.SafetySettings))
	for _, s := range cfg.SafetySettings {
		safety = append(safety, llm.SafetySetting{Category: s.Category, Threshold: s.Threshold})
	}

	return llm.NewGenerator(provider, llm.GenerationOptions{
		Model:             cfg.Model,
		MaxOutputTokens:   cfg.MaxOutputTokens,
		Temperature:       cfg.Temperature,
		SystemInstruction: instruction,
		SafetySettings:    safety,
	}), nil
}
