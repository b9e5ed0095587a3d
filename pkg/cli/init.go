package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/cameron-webmatter/pulsar/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a pulsar.config.toml",
	Long:  `Interactively choose a storage backend and write the project config file`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := workDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(cwd, "pulsar.config.toml")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	var backendType string
	prompt := &survey.Select{
		Message: "Select a backend:",
		Options: []string{"memory", "bolt", "sqlite", "s3"},
		Default: "memory",
	}
	if err := survey.AskOne(prompt, &backendType); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Backend.Type = config.BackendType(backendType)

	switch cfg.Backend.Type {
	case config.BackendBolt, config.BackendSQLite:
		pathPrompt := &survey.Input{
			Message: "Database path:",
			Default: "./pulsar.db",
		}
		if err := survey.AskOne(pathPrompt, &cfg.Backend.Path); err != nil {
			return err
		}
	case config.BackendS3:
		bucketPrompt := &survey.Input{
			Message: "S3 bucket:",
		}
		if err := survey.AskOne(bucketPrompt, &cfg.Backend.Bucket, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("\n✅ Created %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Set a value:    pulsar set greeting '\"hello\"'")
	fmt.Println("  2. Read it back:   pulsar get greeting")
	fmt.Println("  3. Start a bridge: pulsar serve")
	return nil
}
