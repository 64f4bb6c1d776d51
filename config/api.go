package config

import "fmt"

// APIConfig configures the HTTP results API served by the serve command.
type APIConfig struct {
	Addr string `json:"addr"`
	// Token guards the API with a bearer token when non-empty.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Validate checks the listen address.
func (c APIConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("api addr is required")
	}
	return nil
}
