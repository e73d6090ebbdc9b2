package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show catalog collection sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("summary: building store: %w", err)
			}
			defer func() { _ = st.Close() }()

			out := cmd.OutOrStdout()
			c := st.Snapshot()
			fmt.Fprintf(out, "Organizations: %d\n", len(c.Organizations))
			fmt.Fprintf(out, "Namespaces:    %d\n", len(c.Namespaces))
			fmt.Fprintf(out, "Subjects:      %d\n", len(c.Subjects))
			fmt.Fprintf(out, "Samples:       %d\n", len(c.Samples))
			fmt.Fprintf(out, "Files:         %d\n", len(c.Files))

			byKind := make(map[string]int)
			for i := range c.Subjects {
				byKind[string(c.Subjects[i].Kind)]++
			}
			fmt.Fprintln(out, "\nSubjects by kind:")
			for _, k := range slices.Sorted(maps.Keys(byKind)) {
				fmt.Fprintf(out, "  %-28s %d\n", k, byKind[k])
			}
			return nil
		},
	}
}
