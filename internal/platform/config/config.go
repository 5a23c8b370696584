// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config reads the process configuration from environment variables
with caarlos0/env.

	cfg, err := config.Load()

The returned [Config] is read-only and handed to constructors in main.
*/
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration of the CMS API.
type Config struct {
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// # PostgreSQL (published records)
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// # Redis (specification drafts)
	RedisURL string        `env:"REDIS_URL,required"`
	DraftTTL time.Duration `env:"DRAFT_TTL" envDefault:"2h"`

	// # Object storage (S3, Cloudflare R2, MinIO)
	S3Bucket          string `env:"S3_BUCKET"            envDefault:"media"`
	S3Region          string `env:"S3_REGION"            envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`

	// S3PublicBaseURL is the origin objects are served from; a key is public
	// at <base>/<bucket>/<key>.
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL,required"`

	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// AllowedOriginSuffix is the CORS-trusted domain outside development.
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"konstra.co.id"`

	// TrustedProxies lists reverse proxies (CIDR or address) whose forwarding
	// headers identify the client. Empty trusts none.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	proxyPrefixes []netip.Prefix
}

// Load parses the environment and checks the values env tags cannot express.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) check() error {
	var errs []error

	if base, err := url.Parse(c.S3PublicBaseURL); err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		errs = append(errs, errors.New("S3_PUBLIC_BASE_URL must be an absolute http(s) URL"))
	}
	if c.S3Bucket == "" {
		errs = append(errs, errors.New("S3_BUCKET must not be empty"))
	}
	if c.DraftTTL <= 0 {
		errs = append(errs, errors.New("DRAFT_TTL must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}

	c.proxyPrefixes = c.proxyPrefixes[:0]
	for _, entry := range c.TrustedProxies {
		prefix, err := parseProxy(entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("TRUSTED_PROXIES: %w", err))
			continue
		}
		c.proxyPrefixes = append(c.proxyPrefixes, prefix)
	}

	return errors.Join(errs...)
}

// parseProxy accepts "10.0.0.0/8" or a bare address, which covers one host.
func parseProxy(entry string) (netip.Prefix, error) {
	entry = strings.TrimSpace(entry)
	if prefix, err := netip.ParsePrefix(entry); err == nil {
		return prefix.Masked(), nil
	}
	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%q is neither an address nor a CIDR", entry)
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// IsDevelopment reports whether ENVIRONMENT is "development".
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether ENVIRONMENT is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginSuffix returns the CORS-trusted domain.
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}

// ProxyPrefixes returns the parsed TRUSTED_PROXIES networks.
func (c *Config) ProxyPrefixes() []netip.Prefix {
	return c.proxyPrefixes
}
