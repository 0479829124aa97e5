package profile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is configuration to start the main server.
type Profile struct {
	// Generative provider configuration.
	// All text generation goes through the OpenAI-compatible chat API;
	// image generation uses the provider's native generateContent endpoint.
	AIProvider   string // Provider identifier: gemini, openai, deepseek, siliconflow, ollama
	AIAPIKey     string // Provider API key
	AIBaseURL    string // Provider base URL (optional, has default per provider)
	AITextModel  string // Model for note drafting and summarizing
	AIImageModel string // Model for image generation
	AITimeout    int    // Provider request timeout in seconds (default: 120)

	// Object storage configuration (Supabase-compatible storage REST API).
	StorageURL        string // Storage service base URL
	StorageServiceKey string // Service role key for server-side uploads
	StorageBucket     string // Bucket for generated images

	// Other configurations
	Mode    string
	Addr    string
	Data    string
	Driver  string
	DSN     string
	Version string
	Port    int
}

// Provider default configurations.
// Used when NOTEWISE_AI_BASE_URL is not explicitly set.
var aiProviderDefaults = map[string]struct {
	BaseURL    string
	TextModel  string
	ImageModel string
}{
	"gemini": {
		BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
		TextModel:  "gemini-2.5-flash",
		ImageModel: "gemini-2.0-flash-preview-image-generation",
	},
	"openai": {
		BaseURL:   "https://api.openai.com/v1",
		TextModel: "gpt-4o-mini",
	},
	"deepseek": {
		BaseURL:   "https://api.deepseek.com",
		TextModel: "deepseek-chat",
	},
	"siliconflow": {
		BaseURL:   "https://api.siliconflow.cn/v1",
		TextModel: "Qwen/Qwen2.5-72B-Instruct",
	},
	"ollama": {
		BaseURL:   "http://localhost:11434/v1",
		TextModel: "llama3.1",
	},
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if the generative provider is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.AIAPIKey != "" || p.AIProvider == "ollama"
}

// IsStorageEnabled returns true if the object store is configured.
func (p *Profile) IsStorageEnabled() bool {
	return p.StorageURL != "" && p.StorageBucket != ""
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
func (p *Profile) FromEnv() {
	p.AIProvider = getEnvOrDefault("NOTEWISE_AI_PROVIDER", "gemini")
	p.AIAPIKey = getEnvOrDefault("NOTEWISE_AI_API_KEY", "")
	p.AIBaseURL = getEnvOrDefault("NOTEWISE_AI_BASE_URL", "")
	p.AITextModel = getEnvOrDefault("NOTEWISE_AI_TEXT_MODEL", "")
	p.AIImageModel = getEnvOrDefault("NOTEWISE_AI_IMAGE_MODEL", "")
	p.AITimeout = getEnvOrDefaultInt("NOTEWISE_AI_TIMEOUT", 120)

	p.StorageURL = getEnvOrDefault("NOTEWISE_STORAGE_URL", "")
	p.StorageServiceKey = getEnvOrDefault("NOTEWISE_STORAGE_SERVICE_KEY", "")
	p.StorageBucket = getEnvOrDefault("NOTEWISE_STORAGE_BUCKET", "note-images")

	// Apply provider defaults for anything left unset.
	if defaults, ok := aiProviderDefaults[p.AIProvider]; ok {
		if p.AIBaseURL == "" {
			p.AIBaseURL = defaults.BaseURL
		}
		if p.AITextModel == "" {
			p.AITextModel = defaults.TextModel
		}
		if p.AIImageModel == "" {
			p.AIImageModel = defaults.ImageModel
		}
	}
}

// Validate validates the profile and normalizes derived fields.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		p.Data = "/var/opt/notewise"
	}

	if p.Data != "" {
		if fi, err := os.Stat(p.Data); err != nil || !fi.IsDir() {
			return errors.Errorf("data directory %q does not exist or is not a directory", p.Data)
		}
	}

	switch p.Driver {
	case "", "sqlite":
		p.Driver = "sqlite"
		if p.DSN == "" {
			dataDir := p.Data
			if dataDir == "" {
				dataDir = "."
			}
			p.DSN = fmt.Sprintf("%s/notewise_%s.db", strings.TrimRight(dataDir, "/"), p.Mode)
		}
	case "postgres":
		if p.DSN == "" {
			return errors.New("dsn is required for postgres driver")
		}
	default:
		return errors.Errorf("unsupported database driver: %s", p.Driver)
	}

	return nil
}
