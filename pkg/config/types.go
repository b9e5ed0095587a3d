package config

type BackendType string

const (
	BackendMemory BackendType = "memory"
	BackendBolt   BackendType = "bolt"
	BackendSQLite BackendType = "sqlite"
	BackendS3     BackendType = "s3"
)

type Config struct {
	Prefix  string         `toml:"prefix" env:"PULSAR_PREFIX"`
	Backend BackendConfig  `toml:"backend"`
	Server  ServerConfig   `toml:"server"`
	Sources []SourceConfig `toml:"sources"`
}

type BackendConfig struct {
	Type     BackendType `toml:"type" env:"PULSAR_BACKEND"`
	Path     string      `toml:"path" env:"PULSAR_BACKEND_PATH"`
	Bucket   string      `toml:"bucket" env:"PULSAR_BACKEND_BUCKET"`
	S3Prefix string      `toml:"s3Prefix" env:"PULSAR_BACKEND_S3_PREFIX"`
}

type ServerConfig struct {
	Port int    `toml:"port" env:"PULSAR_PORT"`
	Host string `toml:"host" env:"PULSAR_HOST"`
}

type SourceConfig struct {
	Key   string `toml:"key"`
	URL   string `toml:"url"`
	File  string `toml:"file"`
	Force string `toml:"force"`
	Watch bool   `toml:"watch"`
}

func DefaultConfig() *Config {
	return &Config{
		Prefix: "pulsar/",
		Backend: BackendConfig{
			Type: BackendMemory,
			Path: "./pulsar.db",
		},
		Server: ServerConfig{
			Port: 4400,
			Host: "localhost",
		},
	}
}
