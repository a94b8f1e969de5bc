package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the private key for backup",
		Long: "Print the private key hex after verifying the password. Store the " +
			"output somewhere safe: it is the only way to recover the identity.",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := getPassword("Vault password: ")
			if err != nil {
				return err
			}

			seedHex, err := vault.ExportPrivateKey(pw)
			if err != nil {
				return err
			}

			fmt.Println(seedHex)
			return nil
		},
	}
}
