package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/talentdesk/internal/flagx"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Absent keys leave the
// current value untouched, so a file may override just a few settings.
type FileConfig struct {
	HTTPAddr             string   `json:"http_addr" yaml:"http_addr"`
	DatabaseDSN          string   `json:"database_dsn" yaml:"database_dsn"`
	SessionSecret        string   `json:"session_secret" yaml:"session_secret"`
	SessionEncryptionKey string   `json:"session_encryption_key" yaml:"session_encryption_key"`
	TokenSecret          string   `json:"token_secret" yaml:"token_secret"`
	BearerValidity       Duration `json:"bearer_validity" yaml:"bearer_validity"`
	SessionMaxAge        Duration `json:"session_max_age" yaml:"session_max_age"`
	CookieSecure         *bool    `json:"cookie_secure" yaml:"cookie_secure"`
	StrictBearer         *bool    `json:"strict_bearer" yaml:"strict_bearer"`
	LogFormat            string   `json:"log_format" yaml:"log_format"`
	LogLevel             string   `json:"log_level" yaml:"log_level"`
	ReadTimeout          Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout         Duration `json:"write_timeout" yaml:"write_timeout"`
	GoogleClientID       string   `json:"google_client_id" yaml:"google_client_id"`
	GoogleClientSecret   string   `json:"google_client_secret" yaml:"google_client_secret"`
	GoogleRedirectURL    string   `json:"google_redirect_url" yaml:"google_redirect_url"`
	MetricsEnabled       *bool    `json:"metrics_enabled" yaml:"metrics_enabled"`
	MetricsAddr          string   `json:"metrics_addr" yaml:"metrics_addr"`
}

// parseFile loads the file named by -c/-config, if any, and overlays it on
// config. YAML is used for .yaml/.yml files, JSON otherwise. Unreadable or
// malformed files panic.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SessionSecret, c.SessionSecret)
	setString(&config.SessionEncryptionKey, c.SessionEncryptionKey)
	setString(&config.TokenSecret, c.TokenSecret)
	setDuration(&config.BearerValidity, c.BearerValidity)
	setDuration(&config.SessionMaxAge, c.SessionMaxAge)
	setBool(&config.CookieSecure, c.CookieSecure)
	setBool(&config.StrictBearer, c.StrictBearer)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)
	setDuration(&config.ReadTimeout, c.ReadTimeout)
	setDuration(&config.WriteTimeout, c.WriteTimeout)
	setString(&config.GoogleClientID, c.GoogleClientID)
	setString(&config.GoogleClientSecret, c.GoogleClientSecret)
	setString(&config.GoogleRedirectURL, c.GoogleRedirectURL)
	setBool(&config.MetricsEnabled, c.MetricsEnabled)
	setString(&config.MetricsAddr, c.MetricsAddr)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
