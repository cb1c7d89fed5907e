// trusthub-twin serves an in-memory stand-in for the Twilio TrustHub,
// Messaging and Accounts APIs so twctl can be demonstrated and exercised
// offline. Point twctl at it with TWCTL_API_TRUSTHUBURL,
// TWCTL_API_MESSAGINGURL and TWCTL_API_COREURL.
//
// The admin subcommands drive a running twin:
//
//	trusthub-twin seed fixtures.yaml
//	trusthub-twin fault /v1/Services/*/Compliance/Usa2p 500
//	trusthub-twin reset
//
// Admin endpoints (no auth):
//
//	POST   /admin/reset       clear all state
//	GET    /admin/state       dump state as YAML
//	POST   /admin/state       load a YAML or JSON seed
//	POST   /admin/faults      inject a fault: {"path": "/v1/...", "status_code": 500}
//	DELETE /admin/faults      clear faults
//	GET    /admin/requests    recent API requests
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/twctl/twctl/internal/logger"
	"github.com/twctl/twctl/internal/twin"
	"go.uber.org/zap"
)

const defaultPort = 4210

type options struct {
	port     int
	seedFile string
	pageSize int
	logLevel string
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	opts := options{port: defaultPort}
	if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil && p > 0 {
		opts.port = p
	}

	cmd := &cobra.Command{
		Use:           "trusthub-twin",
		Short:         "Serve an in-memory Twilio TrustHub API for twctl",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Initialize(opts.logLevel, ""); err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
	cmd.Flags().IntVar(&opts.port, "port", opts.port, "HTTP listen port (env PORT)")
	cmd.Flags().StringVar(&opts.seedFile, "seed-file", "", "YAML or JSON fixture to load at startup")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "cap on PageSize, to exercise pagination (0 = no cap)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	addAdminCommands(cmd)
	return cmd
}

// newServer builds the twin and loads the seed file, if any.
func newServer(opts options) (*twin.Server, error) {
	srv := twin.New()
	srv.PageSizeCap = opts.pageSize

	if opts.seedFile != "" {
		data, err := os.ReadFile(opts.seedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		if err := srv.State.LoadSeed(data); err != nil {
			return nil, fmt.Errorf("failed to load seed data: %w", err)
		}
		logger.Log.Info("loaded seed data", zap.String("file", opts.seedFile),
			zap.Int("profiles", srv.State.Profiles.Count()),
			zap.Int("accounts", srv.State.Accounts.Count()))
	}
	return srv, nil
}

func serve(ctx context.Context, opts options) error {
	srv, err := newServer(opts)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", opts.port)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("trusthub-twin ready", zap.String("addr", addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down trusthub-twin")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
