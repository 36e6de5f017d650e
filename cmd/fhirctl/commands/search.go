package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/medwire-io/fhir-client/pkg/fhir"
	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	var (
		paramFlags []string
		asPost     bool
		fetchAll   bool
		maxResults int
	)

	cmd := &cobra.Command{
		Use:   "search TARGET",
		Short: "Search for resources",
		Long: `Search for resources of a type. The target may carry an inline
query string ("Patient?name=smith"); additional parameters given with
--param are merged after it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			params := fhir.NewSearchParams()

			for _, flag := range paramFlags {
				key, value, found := strings.Cut(flag, "=")
				if !found {
					return fmt.Errorf("invalid --param %q: expected key=value", flag)
				}

				params.With(key, value)
			}

			ctx := context.Background()
			opts := &fhir.SearchOptions{AsPost: asPost, MaxResults: maxResults}

			if fetchAll {
				resources, err := client.SearchAll(ctx, args[0], params, opts)
				if err != nil {
					return fmt.Errorf("failed to search %q: %w", args[0], err)
				}

				if done, err := outputValue(resources); done {
					return err
				}

				return renderResourceTable(resources)
			}

			bundle, err := client.Search(ctx, args[0], params, opts)
			if err != nil {
				return fmt.Errorf("failed to search %q: %w", args[0], err)
			}

			if done, err := outputValue(bundle); done {
				return err
			}

			return renderResourceTable(bundle.Resources())
		},
	}

	cmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "search parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&asPost, "post", false, "submit the search as a form-encoded POST")
	cmd.Flags().BoolVar(&fetchAll, "all", false, "follow pagination links and collect every result")
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "bound on results collected with --all")

	return cmd
}
