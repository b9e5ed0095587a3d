package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/cameron-webmatter/pulsar/pkg/backend"
	"github.com/cameron-webmatter/pulsar/pkg/backend/boltkv"
	"github.com/cameron-webmatter/pulsar/pkg/backend/s3kv"
	"github.com/cameron-webmatter/pulsar/pkg/backend/sqlitekv"
	"github.com/cameron-webmatter/pulsar/pkg/config"
)

func workDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if rootDir != "" {
		cwd = rootDir
	}
	return cwd, nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}

	cwd, err := workDir()
	if err != nil {
		return nil, err
	}
	return config.LoadFromDir(cwd)
}

func openBackend(ctx context.Context, cfg *config.Config) (backend.Backend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend.Type {
	case config.BackendMemory:
		return backend.NewMemory(), noop, nil
	case config.BackendBolt:
		s, err := boltkv.Open(cfg.Backend.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open bolt backend: %w", err)
		}
		return s, s.Close, nil
	case config.BackendSQLite:
		s, err := sqlitekv.Open(cfg.Backend.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return s, s.Close, nil
	case config.BackendS3:
		var opts []s3kv.Option
		if cfg.Backend.S3Prefix != "" {
			opts = append(opts, s3kv.WithPrefix(cfg.Backend.S3Prefix))
		}
		s, err := s3kv.Open(ctx, cfg.Backend.Bucket, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("open s3 backend: %w", err)
		}
		return s, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend type: %s", cfg.Backend.Type)
	}
}
