package commands

import (
	"context"
	"fmt"

	"github.com/medwire-io/fhir-client/pkg/fhir"
	"github.com/spf13/cobra"
)

// NewReadCommand creates the read command.
func NewReadCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "read TYPE ID",
		Short: "Read a single resource by type and id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			resource, err := client.Read(ctx, args[0], args[1], &fhir.RequestOptions{NoCache: noCache})
			if err != nil {
				return fmt.Errorf("failed to read %s/%s: %w", args[0], args[1], err)
			}

			if done, err := outputValue(resource); done {
				return err
			}

			return renderResourceTable([]fhir.Resource{resource})
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")

	return cmd
}
