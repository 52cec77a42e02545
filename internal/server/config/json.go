package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authcore/internal/flagx"
	"github.com/dmitrijs2005/authcore/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. Interval fields use timex.Duration, which accepts
// both strings such as "10m" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr              string         `json:"endpoint_addr"`
	DatabaseDSN               string         `json:"database_dsn"`
	RedisAddr                 string         `json:"redis_addr"`
	SecretKey                 string         `json:"secret_key"`
	TokenValidityDuration     timex.Duration `json:"token_validity_duration"`
	TwoFACodeValidityDuration timex.Duration `json:"two_fa_code_validity_duration"`
	EmailBaseURL              string         `json:"email_base_url"`
	EmailServerToken          string         `json:"email_server_token"`
	EmailSender               string         `json:"email_sender"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config command-line flags. When no flag is given, nothing is
// loaded. An unreadable or invalid file panics: a half-applied config is
// worse than a failed start.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.RedisAddr = c.RedisAddr
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = c.TokenValidityDuration.Duration
	config.TwoFACodeValidityDuration = c.TwoFACodeValidityDuration.Duration
	config.EmailBaseURL = c.EmailBaseURL
	config.EmailServerToken = c.EmailServerToken
	config.EmailSender = c.EmailSender
}
