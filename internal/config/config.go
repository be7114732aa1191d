// Package config loads and holds the application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Conf is the global configuration, populated by Init.
var Conf Config

// Config mirrors the structure of configs/config.yaml.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Library LibraryConfig `mapstructure:"library"`
	Session SessionConfig `mapstructure:"session"`
	LLM     LLMConfig     `mapstructure:"llm"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ChatConfig holds orchestrator-level settings.
type ChatConfig struct {
	// MaxQuestionLen bounds the raw question; longer input is truncated.
	MaxQuestionLen int `mapstructure:"max_question_len"`
	// ExtraKeywords are appended to the built-in banking keyword set.
	ExtraKeywords []string `mapstructure:"extra_keywords"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
	MaxEntries int `mapstructure:"max_entries"`
}

// LibraryConfig points at the static rule library file.
type LibraryConfig struct {
	Path string `mapstructure:"path"`
}

// SessionConfig selects and configures the session store.
type SessionConfig struct {
	// Store is "redis" or "file".
	Store string `mapstructure:"store"`
	// FilePath is the history file used when Store is "file".
	FilePath string `mapstructure:"file_path"`
	// RedisKey is the key holding the session list when Store is "redis".
	RedisKey string `mapstructure:"redis_key"`
}

// LLMConfig holds model client settings.
type LLMConfig struct {
	// Provider is the default provider when a request carries no selector.
	Provider   string              `mapstructure:"provider"`
	Gemini     GeminiConfig        `mapstructure:"gemini"`
	Ollama     OllamaConfig        `mapstructure:"ollama"`
	Prompt     LLMPromptConfig     `mapstructure:"prompt"`
	Generation LLMGenerationConfig `mapstructure:"generation"`
	// TimeoutSeconds bounds every outbound model call.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// GeminiConfig configures the hosted Gemini API client.
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// OllamaConfig configures a local Ollama server client.
type OllamaConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// LLMPromptConfig configures the system prompt wrapped around every question.
type LLMPromptConfig struct {
	Rules string `mapstructure:"rules"`
}

// LLMGenerationConfig configures generation parameters, fixed per deployment.
type LLMGenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// Init reads the YAML file at configPath into Conf.
// Secrets come from the environment: GEMINI_API_KEY overrides llm.gemini.api_key.
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("llm.gemini.api_key", "GEMINI_API_KEY")
	_ = viper.BindEnv("llm.ollama.base_url", "OLLAMA_URL")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("failed to read config file: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("failed to unmarshal config: %w", err))
	}
}
