package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccdi-federation/ccdi-catalog/internal/store"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as a YAML seed file or JSON",
		Long: "Writes every subject, sample and file of the catalog. The YAML output can be " +
			"loaded back with store.seed_file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("export: building store: %w", err)
			}
			defer func() { _ = st.Close() }()

			c := st.Snapshot()

			var w *os.File
			if output == "" || output == "-" {
				w = os.Stdout
			} else {
				w, err = os.Create(output)
				if err != nil {
					return fmt.Errorf("export: creating output file: %w", err)
				}
				defer func() { _ = w.Close() }()
			}

			switch format {
			case "yaml":
				if encErr := store.Encode(w, c); encErr != nil {
					return fmt.Errorf("export: %w", encErr)
				}
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(c); encErr != nil {
					return fmt.Errorf("export: encoding JSON: %w", encErr)
				}
			default:
				return fmt.Errorf("export: unsupported format %q (use yaml or json)", format)
			}

			if output != "" && output != "-" {
				fmt.Fprintf(os.Stderr, "Exported %d subjects, %d samples and %d files to %s\n",
					len(c.Subjects), len(c.Samples), len(c.Files), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")
	return cmd
}
