package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opd-ai/keyvault"
)

func importCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "import <private-key-hex>",
		Short: "Recover an identity from an exported private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := getPassword("New vault password: ")
			if err != nil {
				return err
			}

			publicKey, err := vault.ImportPrivateKey(pw, args[0], keyvault.ImportOptions{
				Overwrite: overwrite,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Identity recovered.\nIdentity: %s\n", publicKey)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing vault")
	return cmd
}
