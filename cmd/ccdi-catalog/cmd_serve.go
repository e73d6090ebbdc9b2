package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ccdi-federation/ccdi-catalog/internal/api"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP/JSON API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("serve: building store: %w", err)
			}
			defer func() { _ = st.Close() }()

			info := api.DefaultInformation()
			info.Data.LastUpdated = st.UpdatedAt()
			srv := api.NewServer(st, logger, api.Options{
				BaseURL:        cfg.API.BaseURL,
				DefaultPerPage: cfg.Catalog.DefaultPerPage,
				Info:           &info,
			})

			httpSrv := &http.Server{
				Addr:              cfg.API.ListenAddr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			g, ctx := errgroup.WithContext(cmd.Context())

			g.Go(func() error {
				logger.Info("HTTP API server starting", "addr", cfg.API.ListenAddr)
				if listenErr := httpSrv.ListenAndServe(); listenErr != nil && !errors.Is(listenErr, http.ErrServerClosed) {
					return fmt.Errorf("serve: HTTP server: %w", listenErr)
				}
				return nil
			})

			g.Go(func() error {
				<-ctx.Done()
				logger.Info("shutting down")
				const shutdownTimeout = 10 * time.Second
				if shutdownErr := api.Shutdown(httpSrv, shutdownTimeout); shutdownErr != nil {
					return fmt.Errorf("serve: graceful shutdown: %w", shutdownErr)
				}
				return nil
			})

			return g.Wait()
		},
	}
	return cmd
}
