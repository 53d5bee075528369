// Package config provides environment settings and gameplay tuning.
package config

import (
	"os"
	"strconv"
)

// Environment keys read by the commands.
const (
	EnvSSHHost     = "SSH_HOST"
	EnvSSHPort     = "SSH_PORT"
	EnvSSHHostKey  = "SSH_HOST_KEY"
	EnvWebHost     = "WEB_HOST"
	EnvWebPort     = "WEB_PORT"
	EnvDisplayHost = "SSH_DISPLAY_HOST"
	EnvSpectate    = "SPECTATE_ADDR"
	EnvTuning      = "STRIKERS_TUNING"
	EnvAudio       = "STRIKERS_AUDIO"
	EnvLogLevel    = "STRIKERS_LOG_LEVEL"
	EnvLogFile     = "STRIKERS_LOG_FILE"
	EnvSpectateURL = "SPECTATE_URL"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvBool is GetEnv for boolean switches. Unparsable values yield fallback.
func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
