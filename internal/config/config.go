package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/adhere/internal/adherence"
	"github.com/julianstephens/adhere/internal/constants"
	"github.com/julianstephens/adhere/internal/utils"
)

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr               string   `mapstructure:"addr" yaml:"addr"`
	Mode               string   `mapstructure:"mode" yaml:"mode"`
	RateLimitPerMinute int      `mapstructure:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`
	AllowedOrigins     []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// RedisConfig locates the Redis instance used when the cache backend is "redis".
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Password string `mapstructure:"password" yaml:"password"`
}

// CacheConfig selects and tunes the summary cache.
type CacheConfig struct {
	Backend string        `mapstructure:"backend" yaml:"backend"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis" yaml:"redis"`
}

// Config is the top-level application configuration.
type Config struct {
	Database   string       `mapstructure:"database" yaml:"database"`
	WindowDays int          `mapstructure:"window_days" yaml:"window_days"`
	WeekStart  string       `mapstructure:"week_start" yaml:"week_start"`
	Timezone   string       `mapstructure:"timezone" yaml:"timezone"`
	Debug      bool         `mapstructure:"debug" yaml:"debug"`
	Server     ServerConfig `mapstructure:"server" yaml:"server"`
	Cache      CacheConfig  `mapstructure:"cache" yaml:"cache"`

	// path is the file the config was read from, empty when defaults were used
	path string
}

// DefaultConfigPath returns ~/.config/adhere/config.yaml.
func DefaultConfigPath() string {
	return ExpandHome(constants.DefaultConfigFile)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.SettingDatabase, constants.DefaultConfigPath)
	v.SetDefault(constants.SettingWindowDays, constants.DefaultWindowDays)
	v.SetDefault(constants.SettingWeekStart, constants.DefaultWeekStart)
	v.SetDefault(constants.SettingTimezone, constants.DefaultTimezone)
	v.SetDefault(constants.SettingDebug, false)
	v.SetDefault(constants.SettingServerAddr, constants.DefaultServerAddr)
	v.SetDefault(constants.SettingServerMode, constants.DefaultServerMode)
	v.SetDefault(constants.SettingRateLimitPerMinute, constants.DefaultRateLimitPerMinute)
	v.SetDefault(constants.SettingAllowedOrigins, []string{})
	v.SetDefault(constants.SettingCacheBackend, constants.DefaultCacheBackend)
	v.SetDefault(constants.SettingCacheTTL, constants.DefaultCacheTTL)
	v.SetDefault(constants.SettingRedisAddr, constants.DefaultRedisAddr)
	v.SetDefault(constants.SettingRedisDB, 0)
	v.SetDefault(constants.SettingRedisPassword, "")
}

// Load reads configuration from the YAML file at path. A missing file yields
// the defaults. ADHERE_* environment variables (e.g. ADHERE_SERVER_ADDR)
// override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{}
	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		cfg.path = path
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Database = ExpandHome(cfg.Database)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at first use.
func (c *Config) Validate() error {
	if err := adherence.ValidateWindow(c.WindowDays, true); err != nil {
		return fmt.Errorf("%s: %w", constants.SettingWindowDays, err)
	}
	if c.WindowDays > constants.MaxWindowDays {
		return fmt.Errorf("%s: %w: at most %d days, got %d", constants.SettingWindowDays, adherence.ErrInvalidWindow, constants.MaxWindowDays, c.WindowDays)
	}
	if _, err := adherence.ParseWeekStart(c.WeekStart); err != nil {
		return fmt.Errorf("%s: %w", constants.SettingWeekStart, err)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("%s: unknown timezone %q", constants.SettingTimezone, c.Timezone)
	}
	switch c.Cache.Backend {
	case constants.CacheBackendMemory, constants.CacheBackendRedis, constants.CacheBackendNone:
	default:
		return fmt.Errorf("%s: unknown backend %q", constants.SettingCacheBackend, c.Cache.Backend)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("%s must not be negative", constants.SettingRateLimitPerMinute)
	}
	return nil
}

// Path returns the file the configuration was read from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// ConfigDir is the directory holding the config file, logs and the default database.
func (c *Config) ConfigDir() string {
	if c.path != "" {
		return filepath.Dir(c.path)
	}
	return ExpandHome(constants.DefaultConfigDir)
}

// WeekStartValue returns the parsed week start. Load has already validated it.
func (c *Config) WeekStartValue() adherence.WeekStart {
	ws, _ := adherence.ParseWeekStart(c.WeekStart)
	return ws
}

// Save writes cfg to path as YAML, creating parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set(constants.SettingDatabase, cfg.Database)
	v.Set(constants.SettingWindowDays, cfg.WindowDays)
	v.Set(constants.SettingWeekStart, cfg.WeekStart)
	v.Set(constants.SettingTimezone, cfg.Timezone)
	v.Set(constants.SettingDebug, cfg.Debug)
	v.Set(constants.SettingServerAddr, cfg.Server.Addr)
	v.Set(constants.SettingServerMode, cfg.Server.Mode)
	v.Set(constants.SettingRateLimitPerMinute, cfg.Server.RateLimitPerMinute)
	v.Set(constants.SettingAllowedOrigins, cfg.Server.AllowedOrigins)
	v.Set(constants.SettingCacheBackend, cfg.Cache.Backend)
	v.Set(constants.SettingCacheTTL, cfg.Cache.TTL.String())
	v.Set(constants.SettingRedisAddr, cfg.Cache.Redis.Addr)
	v.Set(constants.SettingRedisDB, cfg.Cache.Redis.DB)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
