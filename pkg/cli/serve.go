package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cameron-webmatter/pulsar/pkg/backend"
	"github.com/cameron-webmatter/pulsar/pkg/bridge"
	"github.com/cameron-webmatter/pulsar/pkg/config"
	"github.com/cameron-webmatter/pulsar/pkg/fetch"
	"github.com/cameron-webmatter/pulsar/pkg/filesource"
	"github.com/cameron-webmatter/pulsar/pkg/store"
	"github.com/cameron-webmatter/pulsar/pkg/telemetry"
)

var serveRefresh time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve configured sources over a websocket bridge",
	Long: `Open the configured backend, build a store for every configured source,
and broadcast their updates to websocket clients on /ws`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().DurationVar(&serveRefresh, "refresh", 0, "re-run url producers at this interval, 0 to disable")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "pulsar")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	b, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	srv := bridge.NewServer()
	srv.Start()

	var refreshable []*store.Async[any]

	for _, src := range cfg.Sources {
		s, err := openSource(b, cfg, src)
		if err != nil {
			return fmt.Errorf("source %s: %w", src.Key, err)
		}

		if src.Watch {
			stopWatch, err := filesource.Watch(src.File, s)
			if err != nil {
				return fmt.Errorf("watch %s: %w", src.File, err)
			}
			defer stopWatch()
		}

		if src.URL != "" {
			refreshable = append(refreshable, s)
		}

		if _, err := bridge.Publish(srv, src.Key, s); err != nil {
			return fmt.Errorf("publish %s: %w", src.Key, err)
		}

		if !silent {
			origin := src.URL
			if origin == "" {
				origin = src.File
			}
			fmt.Printf("📡 %s <- %s\n", src.Key, origin)
		}
	}

	if serveRefresh > 0 && len(refreshable) > 0 {
		go func() {
			ticker := time.NewTicker(serveRefresh)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					for _, s := range refreshable {
						s.Invalidate()
					}
				}
			}
		}()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.HandleWebSocket)

	httpServer := &http.Server{
		Addr:    cfg.Address(),
		Handler: mux,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	if !silent {
		fmt.Printf("🚀 Bridge listening on ws://%s/ws\n", cfg.Address())
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	if !silent {
		fmt.Println("\n👋 Shutting down")
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(closeCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openSource(b backend.Backend, cfg *config.Config, src config.SourceConfig) (*store.Async[any], error) {
	opts := []store.AsyncOption[any]{
		store.WithStoreOptions(store.WithPrefix[any](cfg.Prefix)),
		store.WithErrorHandler[any](func(err error) {
			log.Printf("source %s: %v", src.Key, err)
		}),
	}

	if src.URL != "" {
		opts = append(opts, store.WithProduceTimeout[any](30*time.Second))
		return fetch.New(nil, b, src.URL, fetch.ForceType(src.Force), opts...)
	}
	return filesource.New(b, src.File, opts...)
}
