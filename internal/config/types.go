package config

// ProviderType identifies the text generation backend.
type ProviderType string

const (
	ProviderGoogle    ProviderType = "google"
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
)

// Config is the top-level genaichat configuration, corresponding to .genaichat.yml.
type Config struct {
	Provider              ProviderType    `yaml:"provider" koanf:"provider"`
	Model                 string          `yaml:"model" koanf:"model"`
	Project               string          `yaml:"project" koanf:"project"`
	Location              string          `yaml:"location" koanf:"location"`
	UseVertexAI           bool            `yaml:"use_vertexai" koanf:"use_vertexai"`
	CommandsFile          string          `yaml:"commands_file" koanf:"commands_file"`
	SystemInstructionFile string          `yaml:"system_instruction_file" koanf:"system_instruction_file"`
	MaxOutputTokens       int             `yaml:"max_output_tokens" koanf:"max_output_tokens"`
	Temperature           *float64        `yaml:"temperature,omitempty" koanf:"temperature"`
	SafetySettings        []SafetySetting `yaml:"safety_settings" koanf:"safety_settings"`
	Port                  int             `yaml:"port" koanf:"port"`
	LogLevel              string          `yaml:"log_level" koanf:"log_level"`
	LogFormat             string          `yaml:"log_format" koanf:"log_format"`
}

// SafetySetting is one Gemini harm category and the threshold at which
// content in that category is blocked.
type SafetySetting struct {
	Category  string `yaml:"category" koanf:"category"`
	Threshold string `yaml:"threshold" koanf:"threshold"`
}
