package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yourusername/ferdie-assistant/internal/domain/constants"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config application configuration
type Config struct {
	Port string

	PromptPath    string
	CatalogPath   string
	KnowledgePath string
	WatchFiles    bool

	Provider      string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string
	Model         string

	Temperature      float32
	TopP             float32
	PresencePenalty  float32
	FrequencyPenalty float32
	MaxTokens        int
	Timeout          time.Duration

	MaxCandidates  int
	StyleHints     bool
	SanitizeOutput bool
	AllowedOrigins []string

	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string

	LogMode  string
	LogLevel string

	AllowEmptySecrets bool
}

// APIKey key of the selected provider
func (c *Config) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// Load reads .env (when present) and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Port:              getEnv("PORT", "8080"),
		PromptPath:        getEnv("PROMPT_PATH", constants.DefaultPromptPath),
		CatalogPath:       getEnv("CATALOG_PATH", constants.DefaultCatalogPath),
		KnowledgePath:     getEnv("KNOWLEDGE_PATH", constants.DefaultKnowledgePath),
		WatchFiles:        getEnvBool("WATCH_FILES", true),
		Provider:          strings.ToLower(getEnv("AI_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:     strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		GeminiAPIKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		StyleHints:        getEnvBool("STYLE_HINTS", false),
		SanitizeOutput:    getEnvBool("SANITIZE_OUTPUT", true),
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "*")),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		LogMode:           getEnv("LOG_MODE", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AllowEmptySecrets: getEnvBool("ALLOW_EMPTY_SECRETS", false),
	}

	switch config.Provider {
	case ProviderOpenAI:
		config.Model = getEnv("MODEL", constants.DefaultOpenAIModel)
	case ProviderGemini:
		config.Model = getEnv("MODEL", constants.DefaultGeminiModel)
	default:
		return nil, fmt.Errorf("AI_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, config.Provider)
	}

	var err error
	if config.Temperature, err = getEnvFloat("AI_TEMPERATURE", constants.AITemperature); err != nil {
		return nil, err
	}
	if config.TopP, err = getEnvFloat("AI_TOP_P", constants.AITopP); err != nil {
		return nil, err
	}
	if config.PresencePenalty, err = getEnvFloat("AI_PRESENCE_PENALTY", 0); err != nil {
		return nil, err
	}
	if config.FrequencyPenalty, err = getEnvFloat("AI_FREQUENCY_PENALTY", 0); err != nil {
		return nil, err
	}
	if config.MaxTokens, err = getEnvInt("AI_MAX_TOKENS", constants.AIMaxTokens); err != nil {
		return nil, err
	}
	if config.Timeout, err = getEnvDuration("AI_TIMEOUT", constants.AITimeout); err != nil {
		return nil, err
	}
	if config.MaxCandidates, err = getEnvInt("MAX_CANDIDATES", constants.DefaultMaxCandidates); err != nil {
		return nil, err
	}
	if config.CacheTTL, err = getEnvDuration("CACHE_TTL", 0); err != nil {
		return nil, err
	}

	// Validation
	if config.MaxCandidates <= 0 {
		return nil, fmt.Errorf("MAX_CANDIDATES must be positive, got %d", config.MaxCandidates)
	}
	if !config.AllowEmptySecrets && config.APIKey() == "" {
		if config.Provider == ProviderGemini {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is empty")
		}
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is empty")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid integer: %v", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float32) (float32, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid number: %v", key, err)
	}
	return float32(f), nil
}

// getEnvDuration accepts Go durations ("45s") or bare seconds ("45")
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %v", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
