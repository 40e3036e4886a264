package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// GOTRS_RTL_SERVER_PORT=9090.
const EnvPrefix = "GOTRS_RTL"

var (
	cfg   *Config
	src   *source
	mu    sync.RWMutex
	hooks []func(*Config)
)

// source remembers where the active configuration came from so a reload
// rebuilds it the same way, layering included.
type source struct {
	dir string
	// names are the watched base names without extension.
	names []string
	read  func() (*viper.Viper, error)
}

func (s *source) matches(path string) bool {
	if filepath.Clean(filepath.Dir(path)) != filepath.Clean(s.dir) {
		return false
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	for _, n := range s.names {
		if n == name || n == base {
			return true
		}
	}
	return false
}

// Config represents the application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	I18n      I18nConfig      `mapstructure:"i18n"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type AppConfig struct {
	Name  string `mapstructure:"name"`
	Env   string `mapstructure:"env"`
	Debug bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
	CookieName      string `mapstructure:"cookie_name"`
	CookieMaxAge    int    `mapstructure:"cookie_max_age"`
	// RulesFile points to a YAML file with extra class rules.
	RulesFile string `mapstructure:"rules_file"`
	// TranslationsDir holds <lang>.json files for the key audit.
	TranslationsDir string `mapstructure:"translations_dir"`
}

type TemplatesConfig struct {
	Dir   string `mapstructure:"dir"`
	Cache bool   `mapstructure:"cache"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gotrs-rtl")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", int64(1<<20))

	v.SetDefault("i18n.default_language", "en")
	v.SetDefault("i18n.cookie_name", "lang")
	v.SetDefault("i18n.cookie_max_age", 86400*30)
	v.SetDefault("i18n.rules_file", "")
	v.SetDefault("i18n.translations_dir", "./translations")

	v.SetDefault("templates.dir", "./templates")
	v.SetDefault("templates.cache", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the built-in configuration with environment overrides applied.
func Default() *Config {
	c := &Config{}
	if err := newViper().Unmarshal(c); err != nil {
		panic(fmt.Sprintf("invalid built-in configuration: %v", err))
	}
	return c
}

// Load reads default.yaml and then merges config.yaml from configPath.
// Both files are optional; missing files leave the built-in defaults.
func Load(configPath string) error {
	read := func() (*viper.Viper, error) { return readDir(configPath) }
	nv, err := read()
	if err != nil {
		return err
	}
	return install(nv, &source{dir: configPath, names: []string{"default", "config"}, read: read})
}

func readDir(configPath string) (*viper.Viper, error) {
	nv := newViper()
	nv.AddConfigPath(configPath)

	nv.SetConfigName("default")
	if err := nv.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}

	nv.SetConfigName("config")
	if err := nv.MergeInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to merge config: %w", err)
	}
	return nv, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(configFile string) error {
	read := func() (*viper.Viper, error) {
		nv := newViper()
		nv.SetConfigFile(configFile)
		if err := nv.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return nv, nil
	}
	nv, err := read()
	if err != nil {
		return err
	}
	return install(nv, &source{dir: filepath.Dir(configFile), names: []string{filepath.Base(configFile)}, read: read})
}

func decode(nv *viper.Viper) (*Config, error) {
	newCfg := &Config{}
	if err := nv.Unmarshal(newCfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := newCfg.Validate(); err != nil {
		return nil, err
	}
	return newCfg, nil
}

func install(nv *viper.Viper, from *source) error {
	newCfg, err := decode(nv)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	cfg = newCfg
	src = from
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

// OnChange registers fn to be called with the new configuration after a
// successful hot reload.
func OnChange(fn func(*Config)) {
	mu.Lock()
	defer mu.Unlock()
	hooks = append(hooks, fn)
}

// Watch reloads the configuration until ctx is done. It watches the config
// directory, so default.yaml and config.yaml are both picked up, including
// files created after startup, and every reload layers them again.
// Invalid files are logged and ignored; the previous configuration stays
// active. Without a loaded file Watch does nothing.
func Watch(ctx context.Context, logger *zap.Logger) error {
	mu.RLock()
	from := src
	mu.RUnlock()
	if from == nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := watcher.Add(from.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", from.dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !from.matches(e.Name) || !e.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
					continue
				}
				logger.Info("config file changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))
				reload(from, logger)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}

func reload(from *source, logger *zap.Logger) {
	nv, err := from.read()
	if err != nil {
		logger.Error("failed to reload config", zap.Error(err))
		return
	}
	newCfg, err := decode(nv)
	if err != nil {
		logger.Error("reloaded config is invalid", zap.Error(err))
		return
	}

	mu.Lock()
	cfg = newCfg
	fns := append([]func(*Config){}, hooks...)
	mu.Unlock()

	for _, fn := range fns {
		fn(newCfg)
	}
	logger.Info("configuration reloaded")
}

// Get returns the current configuration, or the defaults if nothing was loaded.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if cfg == nil {
		return Default()
	}
	return cfg
}

// Reset drops the loaded configuration. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cfg = nil
	src = nil
	hooks = nil
}

// GetServerAddr returns the server listen address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction returns true if running in production mode
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
