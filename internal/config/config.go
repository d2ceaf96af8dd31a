package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the service.
type Config struct {
	Server struct {
		Addr        string   `yaml:"addr"`
		StaticDir   string   `yaml:"static_dir"`
		CORSOrigins []string `yaml:"cors_origins"`
		Swagger     bool     `yaml:"swagger"`
		Debug       bool     `yaml:"debug"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	// Timezone decides which calendar day counts as today.
	Timezone string `yaml:"timezone"`
}

// Default returns the built-in settings.
func Default() Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Server.StaticDir = "web/build"
	cfg.Server.Swagger = true
	cfg.Database.Path = "data/roteiro.db"
	cfg.Timezone = "America/Sao_Paulo"
	return cfg
}

// Load reads path on top of the defaults, then applies ROTEIRO_* environment
// overrides. A missing file is not an error when path is empty.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.Server.Addr = EnvOrDefault("ROTEIRO_ADDR", c.Server.Addr)
	c.Server.StaticDir = EnvOrDefault("ROTEIRO_STATIC_DIR", c.Server.StaticDir)
	c.Database.Path = EnvOrDefault("ROTEIRO_DB_PATH", c.Database.Path)
	c.Timezone = EnvOrDefault("ROTEIRO_TIMEZONE", c.Timezone)

	if v := os.Getenv("ROTEIRO_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = SplitList(v)
	}
	for key, dst := range map[string]*bool{
		"ROTEIRO_SWAGGER": &c.Server.Swagger,
		"ROTEIRO_DEBUG":   &c.Server.Debug,
	} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
	}
	return nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server address must not be empty")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; empty means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// EnvOrDefault returns the environment variable value or fallback when it is empty.
func EnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
