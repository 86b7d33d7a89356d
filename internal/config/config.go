// Package config holds process configuration and the tuning profile that
// drives character synthesis.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

// EnvPrefix prefixes every environment variable the process reads
const EnvPrefix = "CHARBUILDER"

// Configuration keys, shared with the CLI flag names
const (
	KeyData        = "data"
	KeyRemote      = "remote"
	KeyRemoteURL   = "remote-url"
	KeyOverrides   = "overrides"
	KeyTuning      = "tuning"
	KeyLogLevel    = "log-level"
	KeyRedis       = "redis"
	KeyRedisMaster = "redis-master"
	KeyDraftTTL    = "draft-ttl"
)

// Defaults
const (
	DefaultDataDir   = "data/srd"
	DefaultRemoteURL = "https://www.dnd5eapi.co/api/2014/"
	DefaultLogLevel  = "info"
	DefaultRedisAddr = "localhost:6379"
	DefaultDraftTTL  = 7 * 24 * time.Hour
)

// Config is the process configuration
type Config struct {
	DataDir      string
	Remote       bool
	RemoteURL    string
	OverridesDir string
	TuningFile   string
	LogLevel     string

	// RedisAddr is one address or a comma separated list
	RedisAddr   string
	RedisMaster string
	DraftTTL    time.Duration
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyData, DefaultDataDir)
	v.SetDefault(KeyRemote, false)
	v.SetDefault(KeyRemoteURL, DefaultRemoteURL)
	v.SetDefault(KeyOverrides, "")
	v.SetDefault(KeyTuning, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyRedis, DefaultRedisAddr)
	v.SetDefault(KeyRedisMaster, "")
	v.SetDefault(KeyDraftTTL, DefaultDraftTTL)
}

// LoadEnv reads .env files into the environment. Missing files are skipped.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("failed to load env file", "file", f, "error", err)
		}
	}
}

// Bind prepares v to read CHARBUILDER_* variables and an optional config file
func Bind(v *viper.Viper, configFile string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		return nil
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read config file %s", configFile)
	}
	slog.Debug("using config file", "file", v.ConfigFileUsed())
	return nil
}

// Load builds the config from v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DataDir:      v.GetString(KeyData),
		Remote:       v.GetBool(KeyRemote),
		RemoteURL:    v.GetString(KeyRemoteURL),
		OverridesDir: v.GetString(KeyOverrides),
		TuningFile:   v.GetString(KeyTuning),
		LogLevel:     strings.ToLower(v.GetString(KeyLogLevel)),
		RedisAddr:    v.GetString(KeyRedis),
		RedisMaster:  v.GetString(KeyRedisMaster),
		DraftTTL:     v.GetDuration(KeyDraftTTL),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Remote {
		errors.ValidateRequired("RemoteURL", c.RemoteURL, vb)
	} else {
		errors.ValidateRequired("DataDir", c.DataDir, vb)
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		vb.InvalidField("LogLevel", "must be one of debug, info, warn, error")
	}
	if c.DraftTTL < 0 {
		vb.InvalidField("DraftTTL", "must not be negative")
	}

	return vb.Build()
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// RedisAddrs splits RedisAddr into its addresses
func (c *Config) RedisAddrs() []string {
	var out []string
	for _, addr := range strings.Split(c.RedisAddr, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	if level, ok := logLevels[c.LogLevel]; ok {
		return level
	}
	return slog.LevelInfo
}
