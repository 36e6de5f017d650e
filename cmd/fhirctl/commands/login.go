package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/medwire-io/fhir-client/pkg/fhir"
	"github.com/medwire-io/fhir-client/pkg/fhirclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against a FHIR server and persist the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := viper.GetString("server")
			if server == "" {
				return fhir.ErrBaseURLRequired
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			config := &fhir.Config{
				BaseURL:  server,
				Version:  viper.GetString("fhir_version"),
				Username: username,
				Password: password,
			}

			client, err := fhirclient.New(config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the credentials against the metadata endpoint.
			ctx := context.Background()
			if _, err := client.Capabilities(ctx, nil); err != nil {
				return fmt.Errorf("failed to connect to server: %w", err)
			}

			viper.Set("server", server)
			viper.Set("username", username)
			viper.Set("password", password)

			if err := writeConfig(); err != nil {
				return err
			}

			fmt.Printf("Logged in to %s as %s\n", server, username)

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username for basic authentication")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for basic authentication")

	return cmd
}

func writeConfig() error {
	if err := viper.WriteConfig(); err == nil {
		return nil
	}

	// No config file yet: create one in the default location.
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".fhirctl")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yml")
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
