// Package commands implements the fhirctl CLI commands.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/medwire-io/fhir-client/pkg/fhir"
	"github.com/medwire-io/fhir-client/pkg/fhirclient"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	NotAvailable = "N/A"
)

// zerologAdapter implements fhir.Logger on top of zerolog.
type zerologAdapter struct {
	logger zerolog.Logger
}

func newLogger() fhir.Logger {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	return &zerologAdapter{logger: logger}
}

func (l *zerologAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}

// newClient builds a FHIR client from the effective configuration.
func newClient() (fhir.Client, error) {
	server := viper.GetString("server")
	if server == "" {
		return nil, fhir.ErrBaseURLRequired
	}

	config := &fhir.Config{
		BaseURL:  server,
		Version:  viper.GetString("fhir_version"),
		Token:    viper.GetString("token"),
		Username: viper.GetString("username"),
		Password: viper.GetString("password"),
		Logger:   newLogger(),
		Debug:    viper.GetBool("verbose"),
	}

	client, err := fhirclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// outputValue renders a value as JSON or YAML per the output setting.
// It returns false when the format asks for the default table view.
func outputValue(value interface{}) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(value)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return true, encoder.Encode(value)
	default:
		return false, nil
	}
}

// renderResourceTable prints resources as a table of type and id.
func renderResourceTable(resources []fhir.Resource) error {
	if len(resources) == 0 {
		fmt.Println("No resources found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Type", "ID")

	for _, resource := range resources {
		resourceType := resource.ResourceType()
		if resourceType == "" {
			resourceType = NotAvailable
		}

		id := resource.ID()
		if id == "" {
			id = NotAvailable
		}

		_ = table.Append(resourceType, id)
	}

	return table.Render()
}
