package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

// parseEnv overlays Config with TABZ_* environment variables. Unset
// variables leave the current value alone. Panics on malformed values, like
// the other loaders.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}

// EnvHelp describes every environment variable the client reads.
func EnvHelp() string {
	var cfg Config
	help, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return help
}
