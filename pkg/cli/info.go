package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cameron-webmatter/pulsar/pkg/config"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display environment information",
	Long:  `Display the resolved configuration and backend reachability`,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cwd, err := workDir()
	if err != nil {
		return err
	}

	fmt.Printf("Pulsar                   v%s\n", Version)
	fmt.Printf("Go                       %s\n", runtime.Version())
	fmt.Printf("System                   %s (%s)\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("Working Directory        %s\n", cwd)

	configPath := cfgFile
	if configPath == "" {
		configPath = filepath.Join(cwd, "pulsar.config.toml")
	}
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config                   %s\n", configPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Config Error             %v\n", err)
		return nil
	}

	fmt.Printf("Backend                  %s\n", cfg.Backend.Type)
	switch cfg.Backend.Type {
	case config.BackendBolt, config.BackendSQLite:
		fmt.Printf("Storage Path             %s\n", cfg.Backend.Path)
	case config.BackendS3:
		fmt.Printf("S3 Bucket                %s\n", cfg.Backend.Bucket)
		if cfg.Backend.S3Prefix != "" {
			fmt.Printf("S3 Prefix                %s\n", cfg.Backend.S3Prefix)
		}
	}
	fmt.Printf("Prefix                   %s\n", cfg.Prefix)
	fmt.Printf("Bridge Address           %s\n", cfg.Address())
	if len(cfg.Sources) > 0 {
		fmt.Printf("Sources                  %d\n", len(cfg.Sources))
	}

	b, closeBackend, err := openBackend(cmd.Context(), cfg)
	if err != nil {
		fmt.Printf("Status                   unreachable (%v)\n", err)
		return nil
	}
	defer closeBackend()

	if _, _, err := b.Get(cfg.Prefix + "health"); err != nil {
		fmt.Printf("Status                   unreachable (%v)\n", err)
		return nil
	}

	fmt.Printf("Status                   ok\n")
	return nil
}
