package config

const (
	DefaultConfigFile            = ".genaichat.yml"
	DefaultCommandsFile          = "commands.json"
	DefaultSystemInstructionFile = "context.md"
	DefaultMaxOutputTokens       = 5000
)

// defaultModels is the model used for each provider when none is configured.
var defaultModels = map[ProviderType]string{
	ProviderGoogle:    "gemini-2.0-flash",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-sonnet-4-5-20250929",
}

// DefaultSafetySettings mirrors the filters the chat app has always shipped with.
func DefaultSafetySettings() []SafetySetting {
	return []SafetySetting{
		{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_LOW_AND_ABOVE"},
		{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_ONLY_HIGH"},
		{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_LOW_AND_ABOVE"},
		{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_LOW_AND_ABOVE"},
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:              ProviderGoogle,
		Model:                 defaultModels[ProviderGoogle],
		Location:              "us-central1",
		UseVertexAI:           true,
		CommandsFile:          DefaultCommandsFile,
		SystemInstructionFile: DefaultSystemInstructionFile,
		MaxOutputTokens:       DefaultMaxOutputTokens,
		SafetySettings:        DefaultSafetySettings(),
		Port:                  8080,
		LogLevel:              "info",
		LogFormat:             "json",
	}
}

// DefaultModel returns the default model for the given provider, falling back
// to the Google default for unknown providers.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderGoogle]
}
