package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print the stored value for a key",
	Long:  `Read the raw value stored under a namespaced key in the configured backend`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	b, closeBackend, err := openBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	value, ok, err := b.Get(cfg.Prefix + args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	if !ok {
		return fmt.Errorf("key not found: %s", args[0])
	}

	fmt.Println(value)
	return nil
}
