package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newImportCmd(env *string) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "import <records|biomarkers> <file.csv>",
		Short: "Bulk-load a CSV file into the store",
		Long: `Bulk-load a CSV file with a header row. Rows are inserted
best-effort: invalid rows are reported and skipped, inserted rows stay.

Examples:
  aadb import records data/autoantibodies.csv
  aadb import biomarkers data/biomarkers.csv --env prod`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"records", "biomarkers"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, path := args[0], args[1]
			if kind != "records" && kind != "biomarkers" {
				return fmt.Errorf("unknown collection %q (want records or biomarkers)", kind)
			}

			f, err := os.Open(filepath.Clean(path))
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			ctx := cmd.Context()
			client, err := openClient(ctx, *env, verbose)
			if err != nil {
				return err
			}
			defer client.Close()

			importCSV := client.Records().ImportCSV
			if kind == "biomarkers" {
				importCSV = client.Biomarkers().ImportCSV
			}
			sum, err := importCSV(ctx, f)
			if err != nil {
				return err //nolint:wrapcheck // SDK wraps with context
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(sum); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if sum.Failed > 0 {
				return fmt.Errorf("%d of %d rows failed", sum.Failed, sum.Failed+sum.Inserted)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log SDK operations to stderr")
	return cmd
}
