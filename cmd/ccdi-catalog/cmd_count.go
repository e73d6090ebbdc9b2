package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccdi-federation/ccdi-catalog/internal/filter"
)

func countCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count [subject|sample|file] [field]",
		Short: "Count entities grouped by the values of a field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("count: building store: %w", err)
			}
			defer func() { _ = st.Close() }()

			var counts filter.Counts
			switch args[0] {
			case "subject":
				counts, err = countBy(ctx, filter.Subjects, st.Subjects, args[1])
			case "sample":
				counts, err = countBy(ctx, filter.Samples, st.Samples, args[1])
			case "file":
				counts, err = countBy(ctx, filter.Files, st.Files, args[1])
			default:
				return fmt.Errorf("count: unknown entity %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("count: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total %ss: %d (missing %s: %d)\n\n", args[0], counts.Total, args[1], counts.Missing)
			for _, v := range counts.Values {
				fmt.Fprintf(out, "  %-40s %d\n", v.Value, v.Count)
			}
			return nil
		},
	}
}

func countBy[T any](ctx context.Context, reg *filter.Registry[T], load func(context.Context) ([]T, error), field string) (filter.Counts, error) {
	snapshot, err := load(ctx)
	if err != nil {
		return filter.Counts{}, err
	}
	return filter.CountBy(snapshot, reg, field)
}
