package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccdi-federation/ccdi-catalog/internal/models"
	"github.com/ccdi-federation/ccdi-catalog/internal/store"
)

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [subject|sample|file] [organization] [namespace] [name]",
		Short: "Retrieve a single entity by identifier",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("get: building store: %w", err)
			}
			defer func() { _ = st.Close() }()

			id := models.NewIdentifier(args[1], args[2], args[3])
			switch args[0] {
			case "subject":
				return printEntity(ctx, id, st.Subjects)
			case "sample":
				return printEntity(ctx, id, st.Samples)
			case "file":
				return printEntity(ctx, id, st.Files)
			default:
				return fmt.Errorf("get: unknown entity %q", args[0])
			}
		},
	}
	return cmd
}

func printEntity[T models.Entity](ctx context.Context, id models.Identifier, load func(context.Context) ([]T, error)) error {
	snapshot, err := load(ctx)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}
	e, err := store.Find(snapshot, id)
	if err != nil {
		return fmt.Errorf("get: %s: %w", id, err)
	}
	out, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("get: marshaling JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
