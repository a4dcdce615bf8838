package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains credentials and tuning for the text-generation
// providers. A provider whose credential is empty is treated as not
// configured and is skipped by the generation gateway with a recorded
// failure rather than aborting the whole chain.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	GroqAPIKey        string `mapstructure:"groq_api_key"`
	HuggingFaceAPIKey string `mapstructure:"huggingface_api_key"`
	TogetherAPIKey    string `mapstructure:"together_api_key"`

	// OllamaHost points at a local Ollama instance. Unlike the hosted
	// providers it needs a reachable host rather than a secret.
	OllamaHost string `mapstructure:"ollama_host"`

	// Chain is the ordered list of providers to attempt for each
	// generation request.
	Chain []string `mapstructure:"chain" validate:"required,min=1,dive,oneof=gemini groq huggingface together ollama"`

	// AttemptTimeoutSeconds bounds each individual provider attempt.
	// Zero means no per-attempt timeout beyond the request context.
	AttemptTimeoutSeconds int `mapstructure:"attempt_timeout_seconds" validate:"gte=0"`
}

// TaskConfig contains settings for the background task runner.
type TaskConfig struct {
	WorkerCount         int `mapstructure:"worker_count"           validate:"required,gt=0"`
	QueueSize           int `mapstructure:"queue_size"             validate:"required,gt=0"`
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"required,gt=0"`
}
