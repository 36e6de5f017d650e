package commands

import (
	"context"
	"fmt"

	"github.com/medwire-io/fhir-client/pkg/fhir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewCapabilitiesCommand creates the capabilities command.
func NewCapabilitiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Fetch the server's capability statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			statement, err := client.Capabilities(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to fetch capability statement: %w", err)
			}

			if done, err := outputValue(statement); done {
				return err
			}

			fhirVersion, _ := statement["fhirVersion"].(string)
			if fhirVersion == "" {
				fhirVersion = NotAvailable
			}

			fmt.Printf("Server:       %s\n", viper.GetString("server"))
			fmt.Printf("FHIR version: %s\n", fhirVersion)

			return renderResourceTable([]fhir.Resource{statement})
		},
	}
}
