// Package config loads the codelabs TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/codelabs/config.toml (or
// ~/.config/codelabs/config.toml) unless --config names another path. Every
// key is optional; missing keys keep their defaults. GITHUB_TOKEN overrides
// content.token.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/codelabs/pkg/integrations/github"
	"github.com/matzehuels/codelabs/pkg/wheel"
)

const appName = "codelabs"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	Content ContentConfig `toml:"content"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	Wheel   WheelConfig   `toml:"wheel"`
}

// ContentConfig locates the articles on GitHub.
type ContentConfig struct {
	Owner   string `toml:"owner"`
	Repo    string `toml:"repo"`
	Ref     string `toml:"ref"`
	Dir     string `toml:"dir"`
	RawBase string `toml:"raw_base"`
	APIBase string `toml:"api_base"`
	Token   string `toml:"token,omitempty"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	Dir           string   `toml:"dir,omitempty"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password,omitempty"`
	RedisDB       int      `toml:"redis_db"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// WheelConfig holds the selection wheel defaults.
type WheelConfig struct {
	Sectors  int      `toml:"sectors"`
	Duration Duration `toml:"duration"`
	FPS      float64  `toml:"fps"`
}

// Duration is a time.Duration written as a string such as "1h" or "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Content: ContentConfig{
			Owner:   "TroelsMortensen",
			Repo:    "Codelabs2",
			Ref:     "master",
			Dir:     "Articles",
			RawBase: "https://raw.githubusercontent.com",
			APIBase: github.DefaultBaseURL,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			TTL:       Duration{time.Hour},
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Wheel: WheelConfig{
			Sectors:  2,
			Duration: Duration{wheel.DefaultDuration},
			FPS:      wheel.DefaultFPS,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the file cache directory (~/.cache/codelabs/).
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the configuration at path over the defaults. An empty path
// uses [DefaultPath], where a missing file is not an error. Unknown keys are
// returned in the second result so callers can warn about typos.
func Load(path string) (*Config, []string, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil, cfg.Validate()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, unknown, err := Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, unknown, nil
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (*Config, []string, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, nil, err
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	slices.Sort(unknown)

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, unknown, err
	}
	return cfg, unknown, nil
}

func (c *Config) applyEnv() {
	if tok := os.Getenv("GITHUB_TOKEN"); tok != "" {
		c.Content.Token = tok
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if err := c.Repo().Validate(); err != nil {
		return err
	}
	if strings.Contains(c.Content.Dir, "..") {
		return fmt.Errorf("content.dir %q must not contain ..", c.Content.Dir)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("cache.backend %q: want file, redis or none", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New("cache.redis_addr is required for the redis backend")
	}
	if c.Wheel.Sectors < 1 || c.Wheel.Sectors > wheel.MaxSectors {
		return fmt.Errorf("wheel.sectors %d out of range 1-%d", c.Wheel.Sectors, wheel.MaxSectors)
	}
	return c.WheelConfig().Validate()
}

// Repo returns the content repository coordinates.
func (c *Config) Repo() github.Repo {
	return github.Repo{Owner: c.Content.Owner, Name: c.Content.Repo, Ref: c.Content.Ref}
}

// ImageBase returns the URL under which article folders serve raw files:
// {raw_base}/{owner}/{repo}/refs/heads/{ref}/{dir}.
func (c *Config) ImageBase() string {
	parts := []string{
		strings.TrimSuffix(c.Content.RawBase, "/"),
		c.Content.Owner,
		c.Content.Repo,
		"refs/heads",
		c.Content.Ref,
	}
	if dir := strings.Trim(c.Content.Dir, "/"); dir != "" {
		parts = append(parts, github.EscapePath(dir))
	}
	return strings.Join(parts, "/")
}

// WheelConfig returns the wheel animation parameters.
func (c *Config) WheelConfig() wheel.Config {
	wc := wheel.DefaultConfig()
	wc.Duration = c.Wheel.Duration.Duration
	wc.FPS = c.Wheel.FPS
	return wc
}

// Write encodes the configuration as TOML. The token is never written.
func (c *Config) Write(w io.Writer) error {
	out := *c
	out.Content.Token = ""
	out.Cache.RedisPassword = ""
	return toml.NewEncoder(w).Encode(out)
}
