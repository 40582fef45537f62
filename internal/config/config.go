// Package config holds the viper-backed application configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/untoldecay/tickets/internal/debug"
)

var v *viper.Viper

// Initialize sets up the viper configuration singleton.
// Should be called once at application startup.
func Initialize() error {
	v = viper.New()

	// Only config.yaml is loaded; config.json is the document, never config.
	v.SetConfigType("yaml")

	// Precedence: project .tickets/config.yaml > ~/.config/tk/config.yaml >
	// ~/.tickets/config.yaml
	configFileSet := false

	// 1. Walk up from CWD so commands work from subdirectories.
	cwd, err := os.Getwd()
	if err == nil {
		for dir := cwd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
			configPath := filepath.Join(dir, ".tickets", "config.yaml")
			if _, err := os.Stat(configPath); err == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
				break
			}
		}
	}

	// 2. User config directory.
	if !configFileSet {
		if configDir, err := os.UserConfigDir(); err == nil {
			configPath := filepath.Join(configDir, "tk", "config.yaml")
			if _, err := os.Stat(configPath); err == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
			}
		}
	}

	// 3. Home directory fallback.
	if !configFileSet {
		if homeDir, err := os.UserHomeDir(); err == nil {
			configPath := filepath.Join(homeDir, ".tickets", "config.yaml")
			if _, err := os.Stat(configPath); err == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
			}
		}
	}

	// Environment variables override the config file.
	// E.g. TK_JSON, TK_DB, TK_LOCK_TIMEOUT.
	v.SetEnvPrefix("TK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("json", false)
	v.SetDefault("db", "")
	v.SetDefault("lock-timeout", "30s")
	v.SetDefault("watch.poll-interval", "5s")
	v.SetDefault("watch.debounce", "500ms")

	if configFileSet {
		if err := v.ReadInConfig(); err != nil {
			return err
		}
		debug.Logf("loaded config from %s", v.ConfigFileUsed())
	}
	return nil
}

// GetString retrieves a string configuration value.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetDuration retrieves a duration configuration value.
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set overrides a configuration value (flag binding, tests).
func Set(key string, value any) {
	if v != nil {
		v.Set(key, value)
	}
}

// LockTimeout returns how long store operations wait on the document lock.
func LockTimeout() time.Duration {
	d := GetDuration("lock-timeout")
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}
