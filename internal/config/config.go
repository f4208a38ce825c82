package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"archject/internal/i18n"
)

type Config struct {
	Address      string        `env:"ARCHJECT_ADDR" envDefault:":8080"`
	LogLevel     string        `env:"ARCHJECT_LOG_LEVEL" envDefault:"info"`
	ShutdownSecs int           `env:"ARCHJECT_SHUTDOWN_SECS" envDefault:"10"`
	RateLimit    int           `env:"ARCHJECT_RATE_LIMIT" envDefault:"60"`
	RateWindow   time.Duration `env:"ARCHJECT_RATE_WINDOW" envDefault:"1m"`
	DefaultLang  string        `env:"ARCHJECT_DEFAULT_LANG" envDefault:"en"`

	// TrustedProxies lists peers (IPs or CIDRs) whose X-Forwarded-For header
	// is honoured when keying the rate limiter.
	TrustedProxies []string `env:"ARCHJECT_TRUSTED_PROXIES" envSeparator:","`
}

func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch cfg.LogLevel {
	case "debug", "info":
	default:
		return Config{}, fmt.Errorf("invalid ARCHJECT_LOG_LEVEL: %q", cfg.LogLevel)
	}
	if cfg.ShutdownSecs < 1 {
		return Config{}, fmt.Errorf("invalid ARCHJECT_SHUTDOWN_SECS: %d", cfg.ShutdownSecs)
	}
	if cfg.RateLimit < 1 {
		return Config{}, fmt.Errorf("invalid ARCHJECT_RATE_LIMIT: %d", cfg.RateLimit)
	}
	if cfg.RateWindow < time.Second {
		return Config{}, fmt.Errorf("invalid ARCHJECT_RATE_WINDOW: %s", cfg.RateWindow)
	}
	if _, ok := i18n.ParseTag(cfg.DefaultLang); !ok {
		return Config{}, fmt.Errorf("invalid ARCHJECT_DEFAULT_LANG: %q", cfg.DefaultLang)
	}

	if _, err := ParseProxyPrefixes(cfg.TrustedProxies); err != nil {
		return Config{}, fmt.Errorf("invalid ARCHJECT_TRUSTED_PROXIES: %w", err)
	}

	return cfg, nil
}

// ProxyPrefixes returns TrustedProxies as prefixes. Entries that fail to parse
// are skipped; LoadFromEnv has already rejected them.
func (c Config) ProxyPrefixes() []netip.Prefix {
	out := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, v := range c.TrustedProxies {
		if p, err := parseProxyPrefix(v); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// ParseProxyPrefixes accepts bare addresses ("10.0.0.1") and CIDRs
// ("10.0.0.0/8"). Blank entries are ignored.
func ParseProxyPrefixes(values []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		p, err := parseProxyPrefix(v)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func parseProxyPrefix(v string) (netip.Prefix, error) {
	v = strings.TrimSpace(v)
	if strings.Contains(v, "/") {
		p, err := netip.ParsePrefix(v)
		if err != nil {
			return netip.Prefix{}, err
		}
		return p.Masked(), nil
	}
	addr, err := netip.ParseAddr(v)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}
