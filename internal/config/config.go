package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "config/config.toml"

// DefaultPersonaPrompt receives the username and the activity corpus, in that order.
const DefaultPersonaPrompt = `Analyze this Reddit user's activity and create a detailed persona in JSON format:

Username: %s
Activity Data:
%s

Required JSON format:
{
    "name": "string",
    "age": "string",
    "occupation": "string",
    "status": "string",
    "location": "string",
    "tube": "string",
    "archetype": "string",
    "primary_traits": "string",
    "secondary_traits": "string",
    "motivations": ["string"],
    "behavior": ["string"],
    "goals": ["string"],
    "frustrations": ["string"],
    "quote": "string"
}`

type ServerConfig struct {
	Port        int      `toml:"port"`
	UploadDir   string   `toml:"upload_dir"`
	TempDir     string   `toml:"temp_dir"`
	CORSOrigins []string `toml:"cors_origins"`
}

type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	MaxTokens int    `toml:"max_tokens"`
	Timeout   string `toml:"timeout"`
}

type RedditConfig struct {
	ClientID        string `toml:"client_id"`
	ClientSecret    string `toml:"client_secret"`
	UserAgent       string `toml:"user_agent"`
	ScrapeUserAgent string `toml:"scrape_user_agent"`
	Limit           int    `toml:"limit"`
	ItemDelay       string `toml:"item_delay"`
	Timeout         string `toml:"timeout"`
	APIBaseURL      string `toml:"api_base_url"`
	TokenURL        string `toml:"token_url"`
	WebBaseURL      string `toml:"web_base_url"`
}

type ExportConfig struct {
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	JPEGQuality int    `toml:"jpeg_quality"`
	ChromePath  string `toml:"chrome_path"`
	Timeout     string `toml:"timeout"`
}

type PersonaPrompts struct {
	Persona string `toml:"persona"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	Server  ServerConfig   `toml:"server"`
	LLM     LLMConfig      `toml:"llm"`
	Reddit  RedditConfig   `toml:"reddit"`
	Export  ExportConfig   `toml:"export"`
	Prompts PersonaPrompts `toml:"prompts"`
	Log     LogConfig      `toml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      5000,
			UploadDir: "temp_uploads",
		},
		LLM: LLMConfig{
			Provider:  "together",
			Model:     "deepseek-ai/DeepSeek-V3",
			BaseURL:   "https://api.together.xyz/v1",
			MaxTokens: 2000,
			Timeout:   "120s",
		},
		Reddit: RedditConfig{
			UserAgent:       "UserPersonaGenerator/2.0",
			ScrapeUserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			Limit:           100,
			ItemDelay:       "500ms",
			Timeout:         "10s",
			APIBaseURL:      "https://oauth.reddit.com",
			TokenURL:        "https://www.reddit.com/api/v1/access_token",
			WebBaseURL:      "https://www.reddit.com",
		},
		Export: ExportConfig{
			Width:       1600,
			Height:      800,
			JPEGQuality: 90,
			Timeout:     "30s",
		},
		Prompts: PersonaPrompts{
			Persona: DefaultPersonaPrompt,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the TOML file at path on top of Default and applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Prompts.Persona == "" {
		cfg.Prompts.Persona = DefaultPersonaPrompt
	}

	return cfg, nil
}

// PathFromEnv returns CONFIG_PATH or DefaultPath.
func PathFromEnv() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.Server.UploadDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	} else if v := os.Getenv("TOGETHER_API_KEY"); v != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("REDDIT_CLIENT_ID"); v != "" {
		cfg.Reddit.ClientID = v
	}
	if v := os.Getenv("REDDIT_CLIENT_SECRET"); v != "" {
		cfg.Reddit.ClientSecret = v
	}
	if v := os.Getenv("REDDIT_USER_AGENT"); v != "" {
		cfg.Reddit.UserAgent = v
	}

	if v := os.Getenv("CHROME_PATH"); v != "" {
		cfg.Export.ChromePath = v
	}
}

// Duration parses a duration setting, returning fallback when s is empty or invalid.
func Duration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
