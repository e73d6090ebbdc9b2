package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the catalog configuration and a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			allOK := true

			st, err := newStore(logger)
			if err != nil {
				fmt.Printf("Catalog: FAIL (%v)\n", err)
				allOK = false
			} else {
				_ = st.Close()
				fmt.Println("Catalog: OK")
			}

			if target == "" {
				target = linkBaseURL()
			}
			if err := checkServer(cmd.Context(), target+"/healthz"); err != nil {
				fmt.Printf("API server: FAIL (%v)\n", err)
				allOK = false
			} else {
				fmt.Println("API server: OK")
			}

			if !allOK {
				return fmt.Errorf("one or more health checks failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "url", "", "base URL of the running server (default: api.base_url or localhost)")
	return cmd
}

func checkServer(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}
