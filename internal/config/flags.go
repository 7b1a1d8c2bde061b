package config

import (
	"flag"
	"os"
	"time"
)

// parseFlags overlays Config fields from command-line flags.
//
// Supported flags:
//
//	-host string     authority host
//	-svc string      calling service name
//	-sub string      calling sub-service name
//	-cert string     path to the trust-anchor certificate
//	-ttl int         cache TTL, seconds
//	-d string        PostgreSQL DSN
//	-redis string    redis URL for the shared user cache (optional)
//	-a string        bind address of the trigger endpoint
//	-tip string      trusted client IP for the trigger endpoint
//	-torigin string  trusted origin header value
//	-tsecret string  shared secret for the trigger endpoint
//	-jwt string      HMAC secret for local token decoding (optional)
//	-c string        path to JSON config file (read before flags)
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("syncd", flag.ExitOnError)

	// consumed by parseJSON before this parse runs
	var configFile string
	fs.StringVar(&configFile, "c", "", "path to JSON config file")
	fs.StringVar(&configFile, "config", "", "path to JSON config file")

	fs.StringVar(&config.AuthorityHost, "host", config.AuthorityHost, "identity authority host")
	fs.StringVar(&config.ServiceName, "svc", config.ServiceName, "calling service name")
	fs.StringVar(&config.SubServiceName, "sub", config.SubServiceName, "calling sub-service name")
	fs.StringVar(&config.RootCertPath, "cert", config.RootCertPath, "trust-anchor certificate path")

	ttlSeconds := fs.Int("ttl", int(config.CacheTTL.Seconds()), "cache TTL in seconds")

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisURL, "redis", config.RedisURL, "redis URL for the shared user cache")
	fs.StringVar(&config.TriggerAddr, "a", config.TriggerAddr, "trigger endpoint bind address")
	fs.StringVar(&config.TrustedIP, "tip", config.TrustedIP, "trusted client IP")
	fs.StringVar(&config.TrustedOrigin, "torigin", config.TrustedOrigin, "trusted origin header value")
	fs.StringVar(&config.SharedSecret, "tsecret", config.SharedSecret, "trigger shared secret")
	fs.StringVar(&config.TokenSecret, "jwt", config.TokenSecret, "HMAC secret for local token decoding")

	if err := fs.Parse(os.Args[1:]); err != nil {
		panic(err)
	}

	config.CacheTTL = time.Duration(*ttlSeconds) * time.Second
}
