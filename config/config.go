package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// Config holds everything main needs to wire the server. Secrets may come
// from the JSON file or from the environment; the environment wins only
// when the file leaves a field empty.
type Config struct {
	ServerAddr string      `json:"server_addr,omitempty"`
	LogMode    string      `json:"log_mode,omitempty"`
	LLM        *LLMConfig  `json:"llm,omitempty"`
	TTS        *TTSConfig  `json:"tts,omitempty"`
	Auth       *AuthConfig `json:"auth,omitempty"`
}

// LLMConfig configures the model provider shared by all pipeline stages.
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// TTSConfig configures the narration-audio proxy.
type TTSConfig struct {
	APIKey  string `json:"api_key,omitempty"`
	VoiceID string `json:"voice_id,omitempty"`
}

// AuthConfig configures bearer-token verification. Auth is disabled when
// ClientID is empty.
type AuthConfig struct {
	APIBase  string `json:"api_base,omitempty"`
	ClientID string `json:"client_id,omitempty"`
}

// Load reads JSON config from disk. A missing file is not an error: the
// config can be assembled entirely from the environment.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// env-only setup
	default:
		return Config{}, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if cfg.LLM == nil {
		cfg.LLM = &LLMConfig{}
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}

	if cfg.TTS == nil {
		cfg.TTS = &TTSConfig{}
	}
	if cfg.TTS.APIKey == "" {
		cfg.TTS.APIKey = os.Getenv("CARTESIA_API_KEY")
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.ClientID == "" {
		cfg.Auth.ClientID = os.Getenv("WORKOS_CLIENT_ID")
	}
	if cfg.Auth.APIBase == "" {
		cfg.Auth.APIBase = os.Getenv("WORKOS_API_HOSTNAME")
	}
	if cfg.Auth.APIBase == "" {
		cfg.Auth.APIBase = "https://api.workos.com"
	}
}
