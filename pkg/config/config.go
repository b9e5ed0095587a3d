package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func LoadFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, "pulsar.config.toml")
	return Load(configPath)
}

func (c *Config) Validate() error {
	switch c.Backend.Type {
	case BackendMemory, BackendBolt, BackendSQLite, BackendS3:
	case "":
		c.Backend.Type = BackendMemory
	default:
		return fmt.Errorf("invalid backend type: %s (must be memory, bolt, sqlite, or s3)", c.Backend.Type)
	}

	if c.Backend.Type == BackendBolt || c.Backend.Type == BackendSQLite {
		if c.Backend.Path == "" {
			c.Backend.Path = "./pulsar.db"
		}
	}

	if c.Backend.Type == BackendS3 && c.Backend.Bucket == "" {
		return fmt.Errorf("backend type s3 requires a bucket")
	}

	if c.Prefix == "" {
		c.Prefix = "pulsar/"
	}

	if c.Server.Port == 0 {
		c.Server.Port = 4400
	}

	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}

	for i := range c.Sources {
		src := &c.Sources[i]

		if src.Key == "" {
			return fmt.Errorf("source %d: key is required", i)
		}

		if (src.URL == "") == (src.File == "") {
			return fmt.Errorf("source %s: exactly one of url or file is required", src.Key)
		}

		switch src.Force {
		case "", "json", "text":
		default:
			return fmt.Errorf("source %s: invalid force type %q (must be json or text)", src.Key, src.Force)
		}

		if src.Watch && src.File == "" {
			return fmt.Errorf("source %s: watch requires a file source", src.Key)
		}
	}

	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) IsDurable() bool {
	return c.Backend.Type != BackendMemory
}
