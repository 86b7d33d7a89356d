package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-charbuilder/internal/config"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	v := viper.New()
	s.Require().NoError(config.Bind(v, ""))

	cfg, err := config.Load(v)
	s.Require().NoError(err)
	s.Equal(config.DefaultDataDir, cfg.DataDir)
	s.False(cfg.Remote)
	s.Equal(config.DefaultRemoteURL, cfg.RemoteURL)
	s.Equal("info", cfg.LogLevel)
	s.Equal(config.DefaultRedisAddr, cfg.RedisAddr)
	s.Equal(config.DefaultDraftTTL, cfg.DraftTTL)
}

func (s *ConfigTestSuite) TestEnvironmentOverrides() {
	s.T().Setenv("CHARBUILDER_DATA", "/srv/srd")
	s.T().Setenv("CHARBUILDER_LOG_LEVEL", "DEBUG")
	s.T().Setenv("CHARBUILDER_DRAFT_TTL", "1h")

	v := viper.New()
	s.Require().NoError(config.Bind(v, ""))

	cfg, err := config.Load(v)
	s.Require().NoError(err)
	s.Equal("/srv/srd", cfg.DataDir)
	s.Equal("debug", cfg.LogLevel)
	s.Equal(time.Hour, cfg.DraftTTL)
}

func (s *ConfigTestSuite) TestConfigFile() {
	path := filepath.Join(s.T().TempDir(), "charbuilder.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("data: ./srd\noverrides: ./overrides\nlog-level: warn\n"), 0o600))

	v := viper.New()
	s.Require().NoError(config.Bind(v, path))

	cfg, err := config.Load(v)
	s.Require().NoError(err)
	s.Equal("./srd", cfg.DataDir)
	s.Equal("./overrides", cfg.OverridesDir)
	s.Equal("warn", cfg.LogLevel)
}

func (s *ConfigTestSuite) TestMissingConfigFile() {
	v := viper.New()
	err := config.Bind(v, filepath.Join(s.T().TempDir(), "nope.yaml"))
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ConfigTestSuite) TestValidate() {
	testCases := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{name: "local", cfg: config.Config{DataDir: "srd", LogLevel: "info"}},
		{name: "remote without data dir", cfg: config.Config{Remote: true, RemoteURL: "http://x", LogLevel: "info"}},
		{name: "missing data dir", cfg: config.Config{LogLevel: "info"}, wantErr: true},
		{name: "remote without url", cfg: config.Config{Remote: true, LogLevel: "info"}, wantErr: true},
		{name: "bad log level", cfg: config.Config{DataDir: "srd", LogLevel: "loud"}, wantErr: true},
		{name: "negative ttl", cfg: config.Config{DataDir: "srd", LogLevel: "info", DraftTTL: -time.Second}, wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.cfg.Validate()
			if tc.wantErr {
				s.Error(err)
				s.True(errors.IsInvalidArgument(err))
			} else {
				s.NoError(err)
			}
		})
	}
}

func (s *ConfigTestSuite) TestLoadEnvSkipsMissingFiles() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, ".env")
	s.Require().NoError(os.WriteFile(path, []byte("CHARBUILDER_TEST_ENV_VALUE=loaded\n"), 0o600))
	s.T().Cleanup(func() { _ = os.Unsetenv("CHARBUILDER_TEST_ENV_VALUE") })

	config.LoadEnv(filepath.Join(dir, "missing.env"), path)
	s.Equal("loaded", os.Getenv("CHARBUILDER_TEST_ENV_VALUE"))
}

func (s *ConfigTestSuite) TestRedisTopology() {
	s.T().Setenv("CHARBUILDER_REDIS", "10.0.0.1:26379, 10.0.0.2:26379,")
	s.T().Setenv("CHARBUILDER_REDIS_MASTER", "drafts")

	v := viper.New()
	s.Require().NoError(config.Bind(v, ""))

	cfg, err := config.Load(v)
	s.Require().NoError(err)
	s.Equal([]string{"10.0.0.1:26379", "10.0.0.2:26379"}, cfg.RedisAddrs())
	s.Equal("drafts", cfg.RedisMaster)
}
