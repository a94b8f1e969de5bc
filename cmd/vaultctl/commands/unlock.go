package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func unlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock",
		Short: "Verify the password and print the identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := getPassword("Vault password: ")
			if err != nil {
				return err
			}

			publicKey, err := vault.Unlock(pw)
			if err != nil {
				return err
			}
			defer vault.Lock()

			fmt.Printf("Vault unlocked.\nIdentity: %s\n", publicKey)
			return nil
		},
	}
}
