package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "0.4.0"
	cfgFile string
	rootDir string
	verbose bool
	silent  bool
)

var rootCmd = &cobra.Command{
	Use:   "pulsar",
	Short: "Pulsar - persistent observable state for Go applications",
	Long: `Pulsar keeps reactive values mirrored into a pluggable key-value backend.
Stores fan out every write to their subscribers, async stores refill
themselves from producer functions, and the bridge pushes updates to
connected clients over websockets.`,
	Version: Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "project root directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&silent, "silent", false, "disable all logging")
}
