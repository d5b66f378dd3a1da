package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/talentdesk/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string          HTTP bind address (e.g. ":3000")
//	-d string          PostgreSQL DSN
//	-s string          session cookie signing secret
//	-k string          bearer token signing secret
//	-t duration        bearer token validity (e.g. "720h")
//	-l string          log format: json or console
//	-v string          log level
//	-strict-bearer     verify bearer signature and expiry on /api
//	-cookie-secure     mark the session cookie Secure
//	-metrics           expose /metrics
//	-metrics-addr      serve /metrics on a separate address
//
// os.Args is first filtered to the flags recognized here with
// flagx.FilterArgs, so -c/-config and unknown flags do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], flagx.Spec{
		Value: []string{"a", "d", "s", "k", "t", "l", "v", "metrics-addr"},
		Bool:  []string{"strict-bearer", "cookie-secure", "metrics"},
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session secret")
	fs.StringVar(&config.TokenSecret, "k", config.TokenSecret, "bearer token secret")
	fs.DurationVar(&config.BearerValidity, "t", config.BearerValidity, "bearer token validity")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json|console)")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.BoolVar(&config.StrictBearer, "strict-bearer", config.StrictBearer, "verify bearer tokens on the resource API")
	fs.BoolVar(&config.CookieSecure, "cookie-secure", config.CookieSecure, "send the session cookie only over HTTPS")
	fs.BoolVar(&config.MetricsEnabled, "metrics", config.MetricsEnabled, "expose prometheus metrics")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", config.MetricsAddr, "separate listen address for /metrics")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
