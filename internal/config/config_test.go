package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.AuthorityHost = "authority.internal"
	cfg.ServiceName = "billing"
	cfg.SubServiceName = "invoices"
	cfg.TrustedIP = "10.0.0.5"
	cfg.TrustedOrigin = "billing-gateway"
	cfg.SharedSecret = "s3cret"
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "authority.pem", cfg.RootCertPath)
	require.Equal(t, 60*time.Second, cfg.CacheTTL)
	require.Equal(t, ":8080", cfg.TriggerAddr)
	require.NotEmpty(t, cfg.DatabaseDSN)

	// no defaults for attribution or trigger credentials
	require.Empty(t, cfg.AuthorityHost)
	require.Empty(t, cfg.ServiceName)
	require.Empty(t, cfg.SharedSecret)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_MissingSettings(t *testing.T) {
	tests := []struct {
		name  string
		unset func(*Config)
	}{
		{"authority host", func(c *Config) { c.AuthorityHost = "" }},
		{"service name", func(c *Config) { c.ServiceName = "" }},
		{"sub-service name", func(c *Config) { c.SubServiceName = "" }},
		{"root certificate path", func(c *Config) { c.RootCertPath = "" }},
		{"database DSN", func(c *Config) { c.DatabaseDSN = "" }},
		{"trusted IP", func(c *Config) { c.TrustedIP = "" }},
		{"trusted origin", func(c *Config) { c.TrustedOrigin = "" }},
		{"shared secret", func(c *Config) { c.SharedSecret = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.unset(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrMissingSetting)
			require.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestValidate_RedisAndTokenSecretAreOptional(t *testing.T) {
	cfg := validConfig()
	cfg.RedisURL = ""
	cfg.TokenSecret = ""
	require.NoError(t, cfg.Validate())
}

func TestApply_OverlaysOnlySetFields(t *testing.T) {
	cfg := validConfig()
	apply(&jsonConfig{
		AuthorityHost:   "other.internal",
		CacheTTLSeconds: 300,
	}, cfg)

	require.Equal(t, "other.internal", cfg.AuthorityHost)
	require.Equal(t, 300*time.Second, cfg.CacheTTL)

	// unset file fields leave current values alone
	require.Equal(t, "billing", cfg.ServiceName)
	require.Equal(t, "authority.pem", cfg.RootCertPath)
}

func TestConfigFilePath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short flag", []string{"-c", "cfg.json"}, "cfg.json"},
		{"long flag", []string{"-config", "cfg.json"}, "cfg.json"},
		{"double dash", []string{"--config", "cfg.json"}, "cfg.json"},
		{"short equals", []string{"-c=cfg.json"}, "cfg.json"},
		{"long equals", []string{"-config=cfg.json"}, "cfg.json"},
		{"double dash equals", []string{"--config=cfg.json"}, "cfg.json"},
		{"among other flags", []string{"-host", "h", "-c", "cfg.json", "-svc", "s"}, "cfg.json"},
		{"absent", []string{"-host", "h"}, ""},
		{"dangling flag", []string{"-c"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, configFilePath(tt.args))
		})
	}
}
