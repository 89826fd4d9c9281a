package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	aadb "github.com/aadb-project/aadb/pkg/sdk"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	advanced bool
	field    string
	limit    int
	page     int
	format   string // "text", "json"
	verbose  bool
}

func newSearchCmd(env *string) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search records",
		Long: `Search records the way the API does.

By default runs the ranked listing search (priority first, then disease).
With --advanced, runs the weighted relevance search instead.

Examples:
  aadb search ro52
  aadb search lupus --field disease --limit 5
  aadb search "anti-dsDNA" --advanced --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")
			ctx := cmd.Context()

			client, err := openClient(ctx, *env, opts.verbose)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			if opts.advanced {
				res, err := client.Records().Advanced(ctx, term, opts.limit, true)
				if err != nil {
					return err //nolint:wrapcheck // SDK wraps with context
				}
				if opts.format == "json" {
					return writeJSONOut(out, res)
				}
				return printHits(out, res)
			}

			page, err := client.Records().List(ctx, aadb.ListQuery{
				Search: term,
				Field:  opts.field,
				Page:   opts.page,
				Limit:  opts.limit,
			})
			if err != nil {
				return err //nolint:wrapcheck // SDK wraps with context
			}
			if opts.format == "json" {
				return writeJSONOut(out, page)
			}
			return printPage(out, page)
		},
	}

	cmd.Flags().BoolVar(&opts.advanced, "advanced", false, "Use weighted relevance search")
	cmd.Flags().StringVar(&opts.field, "field", "", "Restrict the listing search to one field (default: all)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "Maximum number of results")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page number (listing search only)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log SDK operations to stderr")

	return cmd
}

func writeJSONOut(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func printPage(w io.Writer, page aadb.Page[*aadb.Record]) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDISEASE\tAUTOANTIBODY\tAUTOANTIGEN\tPRIORITY")
	for _, r := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Disease, r.Autoantibody, r.Autoantigen, r.Priority)
	}
	fmt.Fprintf(tw, "\npage %d of %d, %d matches\n", page.Page, page.TotalPages, page.Total)
	return tw.Flush() //nolint:wrapcheck // stdout
}

func printHits(w io.Writer, res aadb.AdvancedResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tDISEASE\tAUTOANTIBODY\tAUTOANTIGEN")
	for _, h := range res.Hits {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", h.Score, h.Record.Disease, h.Record.Autoantibody, h.Record.Autoantigen)
	}
	if st := res.Stats; st != nil {
		fmt.Fprintf(tw, "\n%d matches, %d diseases, %d autoantibodies, %d autoantigens\n",
			st.Count, st.DistinctDiseases, st.DistinctAutoantibodies, st.DistinctAutoantigens)
	}
	return tw.Flush() //nolint:wrapcheck // stdout
}
