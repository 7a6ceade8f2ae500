package server

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/delivio/actionserver/backend"
	"github.com/delivio/actionserver/identity"
	"github.com/delivio/actionserver/session"
)

const (
	defaultListen      = ":5055"
	defaultTurnTimeout = 10
)

// Config holds initialization parameters for the action server and its
// subsystems. Each subsystem section delegates to that subsystem's
// config-driven constructor.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `json:"listen,omitempty"`
	// AllowedOrigins restricts cross-origin webhook callers; empty allows all.
	AllowedOrigins []string `json:"allowed_origins,omitempty"`
	// TurnTimeoutSeconds bounds one webhook turn end to end.
	TurnTimeoutSeconds int `json:"turn_timeout_seconds,omitempty"`
	// Observer names a registered observer ("noop", "slog").
	Observer string `json:"observer,omitempty"`
	// FallbackUserID stands in for unauthenticated sessions. An explicit
	// empty string disables the fallback; leaving the field out keeps the
	// default.
	FallbackUserID *string `json:"fallback_user_id,omitempty"`

	Backend backend.Config `json:"backend"`
	Session session.Config `json:"session"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	fallback := identity.DefaultFallbackID
	return Config{
		Listen:             defaultListen,
		TurnTimeoutSeconds: defaultTurnTimeout,
		Observer:           "slog",
		FallbackUserID:     &fallback,
		Backend:            backend.DefaultConfig(),
		Session:            session.DefaultConfig(),
	}
}

// FallbackID returns the effective fallback user id, empty when the
// fallback is disabled.
func (c *Config) FallbackID() string {
	if c.FallbackUserID == nil {
		return ""
	}
	return *c.FallbackUserID
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Backend.Merge(&source.Backend)
	c.Session.Merge(&source.Session)

	if source.Listen != "" {
		c.Listen = source.Listen
	}
	if len(source.AllowedOrigins) > 0 {
		c.AllowedOrigins = source.AllowedOrigins
	}
	if source.TurnTimeoutSeconds > 0 {
		c.TurnTimeoutSeconds = source.TurnTimeoutSeconds
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}
	// A present-but-empty value is a deliberate disable, so only a nil
	// pointer counts as unset here.
	if source.FallbackUserID != nil {
		c.FallbackUserID = source.FallbackUserID
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
