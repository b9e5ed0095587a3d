package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/cameron-webmatter/pulsar/pkg/fetch"
	"github.com/cameron-webmatter/pulsar/pkg/store"
)

var (
	fetchForce   string
	fetchTimeout time.Duration
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]",
	Short: "Fetch a URL into the backend and print the decoded value",
	Long: `Run one production of a fetch store: GET the URL, decode the body by
content type, store the result under the URL key, and print it`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchForce, "force", "", "force decoding as json or text")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "request timeout, 0 to disable")
}

func runFetch(cmd *cobra.Command, args []string) error {
	url := args[0]

	switch fetchForce {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid force type %q (must be json or text)", fetchForce)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	b, closeBackend, err := openBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	updates := make(chan any, 1)
	errs := make(chan error, 1)
	var armed atomic.Bool

	s, err := fetch.New(nil, b, url, fetch.ForceType(fetchForce),
		store.WithStoreOptions(store.WithPrefix[any](cfg.Prefix)),
		store.WithProduceTimeout[any](fetchTimeout),
		store.WithErrorHandler[any](func(err error) {
			if !armed.Load() {
				return
			}
			select {
			case errs <- err:
			default:
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("open fetch store: %w", err)
	}

	unsub, err := s.Subscribe(func(value any, ok bool) {
		if !armed.Load() || !ok {
			return
		}
		select {
		case updates <- value:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer unsub()

	armed.Store(true)
	s.Invalidate()

	var value any
	select {
	case value = <-updates:
	case err := <-errs:
		return err
	}

	switch v := value.(type) {
	case string:
		fmt.Println(v)
	case []byte:
		os.Stdout.Write(v)
		fmt.Println()
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode value: %w", err)
		}
		fmt.Println(string(out))
	}

	if verbose && !silent {
		fmt.Printf("\n📦 Cached at %s%s\n", cfg.Prefix, url)
	}
	return nil
}
