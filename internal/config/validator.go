package config

import (
	"fmt"
	"strings"

	"github.com/gotrs-io/gotrs-rtl/internal/i18n"
)

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "console"}
)

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, "server.shutdown_timeout must not be negative")
	}
	if _, ok := i18n.GetLanguageConfig(c.I18n.DefaultLanguage); !ok {
		errs = append(errs, fmt.Sprintf("i18n.default_language %q is not supported", c.I18n.DefaultLanguage))
	}
	if c.I18n.CookieName == "" {
		errs = append(errs, "i18n.cookie_name is required")
	}
	if !contains(validLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, fmt.Sprintf("logging.level %q must be one of %s", c.Logging.Level, strings.Join(validLevels, ", ")))
	}
	if !contains(validFormats, strings.ToLower(c.Logging.Format)) {
		errs = append(errs, fmt.Sprintf("logging.format %q must be one of %s", c.Logging.Format, strings.Join(validFormats, ", ")))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, "metrics.path must start with /")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
