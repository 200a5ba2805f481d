package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bnema/xpertdoc-portal-cli/internal/adapters/fixture"
	"github.com/spf13/cobra"
)

const fixtureShutdownTimeout = 5 * time.Second

func newFixtureCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "In-memory portal for local testing",
	}

	cmd.AddCommand(newFixtureServeCmd(app))

	return cmd
}

func newFixtureServeCmd(app *app) *cobra.Command {
	var addr string
	var seedPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory portal until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed := fixture.DefaultSeed()
			if seedPath != "" {
				var err error
				seed, err = fixture.LoadSeed(seedPath)
				if err != nil {
					return err
				}
			}

			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}

			portal := fixture.New(seed, fixture.WithLogger(app.log))
			server := &http.Server{
				Handler:           portal.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- server.Serve(listener)
			}()

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "fixture portal listening on http://%s\n", listener.Addr()); err != nil {
				_ = server.Close()
				return err
			}

			select {
			case err := <-serveErr:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve fixture portal: %w", err)
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), fixtureShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown fixture portal: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().StringVar(&seedPath, "seed", "", "YAML seed file (default: built-in sample data)")

	return cmd
}
