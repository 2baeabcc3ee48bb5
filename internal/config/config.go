// Package config loads the service configuration from YAML with environment
// overrides. Secret values may be stored encrypted ("enc:" prefix) and are
// decrypted on load with the secretbox master key.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/hancock/internal/security/secretbox"
)

// encPrefix marks a config value encrypted with `hancock enc`.
const encPrefix = "enc:"

type Config struct {
	App struct {
		// dev | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Storage struct {
		DSN             string `yaml:"dsn"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MinConns        int    `yaml:"min_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
		UserTTL string `yaml:"user_ttl"` // TTL for cached user lookups
	} `yaml:"cache"`

	Providers struct {
		Google struct {
			Enabled      bool   `yaml:"enabled"`
			ClientID     string `yaml:"client_id"`
			ClientSecret string `yaml:"client_secret"`
			RedirectURL  string `yaml:"redirect_url"`
			AuthURL      string `yaml:"auth_url"`  // default: Google's published endpoint
			TokenURL     string `yaml:"token_url"` // default: Google's published endpoint
		} `yaml:"google"`
	} `yaml:"providers"`

	Authorization struct {
		SigningSecret string `yaml:"signing_secret"`
		Validity      string `yaml:"validity"` // how long issued contexts live
	} `yaml:"authorization"`

	Authentication struct {
		NonceCookieName string `yaml:"nonce_cookie_name"`
		NonceCookieTTL  string `yaml:"nonce_cookie_ttl"`
	} `yaml:"authentication"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyEnvOverrides()

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Cache.UserTTL == "" {
		c.Cache.UserTTL = "30s"
	}
	if c.Authorization.Validity == "" {
		c.Authorization.Validity = "8760h" // 365d
	}
	if c.Authentication.NonceCookieName == "" {
		c.Authentication.NonceCookieName = "authn_nonce"
	}
	if c.Authentication.NonceCookieTTL == "" {
		c.Authentication.NonceCookieTTL = "5m"
	}

	// validate string durations
	for name, v := range map[string]string{
		"storage.conn_max_lifetime":       c.Storage.ConnMaxLifetime,
		"cache.memory.default_ttl":        c.Cache.Memory.DefaultTTL,
		"cache.user_ttl":                  c.Cache.UserTTL,
		"authorization.validity":          c.Authorization.Validity,
		"authentication.nonce_cookie_ttl": c.Authentication.NonceCookieTTL,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("config %s: %w", name, err)
		}
	}

	// decrypt enc: secrets
	if err := c.decryptSecrets(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HANCOCK_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("CACHE_KIND"); v != "" {
		c.Cache.Kind = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("AUTHZ_SIGNING_SECRET"); v != "" {
		c.Authorization.SigningSecret = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		c.Providers.Google.ClientID = v
		c.Providers.Google.Enabled = true
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		c.Providers.Google.ClientSecret = v
	}
	if v := os.Getenv("GOOGLE_REDIRECT_URL"); v != "" {
		c.Providers.Google.RedirectURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.App.Env = v
	}
}

func (c *Config) decryptSecrets() error {
	for name, field := range map[string]*string{
		"storage.dsn":                    &c.Storage.DSN,
		"providers.google.client_secret": &c.Providers.Google.ClientSecret,
		"authorization.signing_secret":   &c.Authorization.SigningSecret,
	} {
		if !strings.HasPrefix(*field, encPrefix) {
			continue
		}
		plain, err := secretbox.Decrypt(strings.TrimPrefix(*field, encPrefix))
		if err != nil {
			return fmt.Errorf("decrypt config %s: %w", name, err)
		}
		*field = plain
	}
	return nil
}

// Duration returns an already-validated duration string as time.Duration.
func Duration(v string) time.Duration {
	d, _ := time.ParseDuration(v)
	return d
}
