package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a value under a key",
	Long: `Write a raw value under a namespaced key in the configured backend.
Values are stored verbatim; quote JSON so library stores can decode it,
e.g. pulsar set name '"Ada"'`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	b, closeBackend, err := openBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	if err := b.Set(cfg.Prefix+args[0], args[1]); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}

	if !silent {
		fmt.Printf("✅ Set %s%s\n", cfg.Prefix, args[0])
	}
	return nil
}
