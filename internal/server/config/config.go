// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the authcore server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory user store.
//   - RedisAddr: Redis address for the banned-token and 2FA-code stores.
//     Empty selects the in-memory stores (development/tests only).
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: session token lifetime.
//   - TwoFACodeValidityDuration: pending 2FA challenge lifetime.
//   - EmailBaseURL / EmailServerToken / EmailSender: outbound 2FA-code delivery.
type Config struct {
	EndpointAddr              string
	DatabaseDSN               string
	RedisAddr                 string
	SecretKey                 string
	TokenValidityDuration     time.Duration
	TwoFACodeValidityDuration time.Duration
	EmailBaseURL              string
	EmailServerToken          string
	EmailSender               string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.DatabaseDSN = ""
	c.RedisAddr = ""
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 10 * time.Minute
	c.TwoFACodeValidityDuration = 600 * time.Second
	c.EmailBaseURL = "https://api.postmarkapp.com/email"
	c.EmailServerToken = ""
	c.EmailSender = "auth@example.com"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
