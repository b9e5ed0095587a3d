package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var delCmd = &cobra.Command{
	Use:   "del [key]",
	Short: "Remove a key from the backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runDel,
}

func init() {
	rootCmd.AddCommand(delCmd)
}

func runDel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	b, closeBackend, err := openBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	if err := b.Remove(cfg.Prefix + args[0]); err != nil {
		return fmt.Errorf("delete %s: %w", args[0], err)
	}

	if !silent {
		fmt.Printf("✅ Deleted %s%s\n", cfg.Prefix, args[0])
	}
	return nil
}
