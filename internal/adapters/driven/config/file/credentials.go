package file

import (
	"os"

	"github.com/custodia-labs/studykit/internal/core/ports/driven"
)

// Environment variable fallbacks for provider credentials. The config
// file wins; the environment covers fresh installs and CI.
const (
	envHuggingFace = "HUGGINGFACE_API_KEY"
	envGroq        = "GROQ_API_KEY"
	envGoogleAI    = "GOOGLE_AI_API_KEY"
	envUserID      = "STUDYKIT_USER"
)

// Credentials resolves provider API keys and the acting user from a
// config store with environment fallback.
type Credentials struct {
	config driven.ConfigStore
}

// NewCredentials creates a credentials resolver over a config store.
func NewCredentials(config driven.ConfigStore) *Credentials {
	return &Credentials{config: config}
}

// HuggingFaceKey returns the embedding provider API key.
func (c *Credentials) HuggingFaceKey() string {
	return c.resolve(driven.ConfigKeyHuggingFace, envHuggingFace)
}

// GroqKey returns the primary completion provider API key.
func (c *Credentials) GroqKey() string {
	return c.resolve(driven.ConfigKeyGroq, envGroq)
}

// GoogleAIKey returns the fallback completion provider API key.
func (c *Credentials) GoogleAIKey() string {
	return c.resolve(driven.ConfigKeyGoogleAI, envGoogleAI)
}

// UserID returns the acting user identity.
func (c *Credentials) UserID() string {
	return c.resolve(driven.ConfigKeyUserID, envUserID)
}

func (c *Credentials) resolve(key, envVar string) string {
	if v := c.config.GetString(key); v != "" {
		return v
	}
	return os.Getenv(envVar)
}
