package config

import (
	"encoding/json"
	"os"
	"strings"
	"time"
)

// jsonConfig is the DTO for the optional JSON configuration file. Duration
// settings are plain seconds so the file stays trivial to template.
type jsonConfig struct {
	AuthorityHost   string `json:"authority_host"`
	ServiceName     string `json:"service_name"`
	SubServiceName  string `json:"sub_service_name"`
	RootCertPath    string `json:"root_cert_path"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds"`
	DatabaseDSN     string `json:"database_dsn"`
	RedisURL        string `json:"redis_url"`
	TriggerAddr     string `json:"trigger_addr"`
	TrustedIP       string `json:"trusted_ip"`
	TrustedOrigin   string `json:"trusted_origin"`
	SharedSecret    string `json:"shared_secret"`
	TokenSecret     string `json:"token_secret"`
}

// configFilePath scans args for -c/-config without consuming any other
// flag, so the JSON overlay can be applied before the full flag parse.
func configFilePath(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-c" || arg == "-config" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "-c="):
			return strings.TrimPrefix(arg, "-c=")
		case strings.HasPrefix(arg, "-config="):
			return strings.TrimPrefix(arg, "-config=")
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}

// parseJSON overlays values from the JSON file named by -c/-config, if
// any. Unset file fields leave the current values alone. An unreadable or
// invalid file panics: a half-applied config is worse than no start.
func parseJSON(config *Config) {
	path := configFilePath(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	apply(c, config)
}

func apply(c *jsonConfig, config *Config) {
	if c.AuthorityHost != "" {
		config.AuthorityHost = c.AuthorityHost
	}
	if c.ServiceName != "" {
		config.ServiceName = c.ServiceName
	}
	if c.SubServiceName != "" {
		config.SubServiceName = c.SubServiceName
	}
	if c.RootCertPath != "" {
		config.RootCertPath = c.RootCertPath
	}
	if c.CacheTTLSeconds != 0 {
		config.CacheTTL = time.Duration(c.CacheTTLSeconds) * time.Second
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.RedisURL != "" {
		config.RedisURL = c.RedisURL
	}
	if c.TriggerAddr != "" {
		config.TriggerAddr = c.TriggerAddr
	}
	if c.TrustedIP != "" {
		config.TrustedIP = c.TrustedIP
	}
	if c.TrustedOrigin != "" {
		config.TrustedOrigin = c.TrustedOrigin
	}
	if c.SharedSecret != "" {
		config.SharedSecret = c.SharedSecret
	}
	if c.TokenSecret != "" {
		config.TokenSecret = c.TokenSecret
	}
}
