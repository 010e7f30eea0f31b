package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"swiftstock/internal/app"
	"swiftstock/internal/models"
	"swiftstock/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				quit := make(chan os.Signal, 1)
				signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
				defer signal.Stop(quit)

				listenErr := make(chan error, 1)
				go func() {
					log.Printf("Starting server on port %s", a.Config.AppPort)
					listenErr <- a.Server.Listen(a.Config.AppPort)
				}()

				select {
				case err := <-listenErr:
					return fmt.Errorf("server failed: %w", err)
				case <-quit:
				}

				log.Println("Shutting down server...")
				if err := a.Server.Shutdown(); err != nil {
					log.Printf("Error during Fiber shutdown: %v", err)
				}
				log.Println("Server gracefully stopped")
				return nil
			})
		},
	}
}

func newEventsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print inventory events from RabbitMQ until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logCloser, err := opts.loadConfig()
			if err != nil {
				return err
			}
			defer logCloser.Close()
			if cfg.RabbitMQURL == "" {
				return fmt.Errorf("RABBITMQ_URL is not set")
			}

			client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
			if err != nil {
				return err
			}

			done := make(chan error, 1)
			go func() {
				done <- client.ConsumeInventoryEvents(printEvent(cmd.OutOrStdout()))
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err = <-done:
			case <-quit:
			}
			if closeErr := client.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
			return err
		},
	}
}

// printEvent writes each event as a JSON line. A failed write stops the
// consumer, since every later message would fail the same way.
func printEvent(w io.Writer) func(models.InventoryEvent) error {
	enc := json.NewEncoder(w)
	return func(event models.InventoryEvent) error {
		if err := enc.Encode(event); err != nil {
			return fmt.Errorf("%w: write event: %v", rabbitmq.ErrStopConsuming, err)
		}
		return nil
	}
}
