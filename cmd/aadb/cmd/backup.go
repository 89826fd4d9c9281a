package cmd

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
)

func newBackupCmd(env *string) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload one snapshot of every collection to the backup bucket",
		Long: `Upload one gzip-compressed JSON snapshot of records, submissions,
biomarkers and articles, then rotate old snapshots. Requires
backup.enabled and a bucket in the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *env)
			if err != nil {
				return err
			}
			defer a.close()

			if a.services.Backup == nil {
				return errors.New("backup is not enabled in the config")
			}
			res, err := a.services.Backup.Run(cmd.Context())
			if err != nil {
				return err //nolint:wrapcheck // Run wraps with context
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res) //nolint:wrapcheck // stdout
		},
	}
}
