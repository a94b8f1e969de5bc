package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opd-ai/keyvault"
)

func createCmd() *cobra.Command {
	var (
		overwrite bool
		migrate   bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a new identity and protect it with a password",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := getPassword("New vault password: ")
			if err != nil {
				return err
			}

			publicKey, err := vault.Create(pw, keyvault.CreateOptions{
				Overwrite:        overwrite,
				MigrateLegacyKey: migrate,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Vault created.\nIdentity: %s\n", publicKey)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing vault")
	cmd.Flags().BoolVar(&migrate, "migrate-legacy", false, "adopt a legacy stored key if present")
	return cmd
}
