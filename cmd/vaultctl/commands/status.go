package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opd-ai/keyvault/record"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the vault's state",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := vault.Status()
			if err != nil {
				return err
			}

			if !status.Exists {
				fmt.Println("No vault. Create one with 'vaultctl create'.")
				return nil
			}

			if status.Corruption != record.CorruptionNone {
				fmt.Printf("Vault record is corrupted: %s\n", status.Corruption)
				fmt.Println(vault.CorruptionGuidance(status.Corruption))
				return nil
			}

			fmt.Printf("Vault exists (locked).\nIdentity: %s\n", status.PublicKeyHex)
			return nil
		},
	}
}
