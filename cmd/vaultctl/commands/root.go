// Package commands implements the vaultctl command tree.
package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opd-ai/keyvault"
	"github.com/opd-ai/keyvault/storage"
)

var (
	dir      string
	password string

	vault *keyvault.Vault
)

func Execute() error {
	root := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Manage a password-protected signing identity",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dir = filepath.Join(home, ".keyvault")
			}

			store, err := storage.NewFileStore(dir)
			if err != nil {
				return err
			}
			vault = keyvault.New(store, nil)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dir, "dir", "", "vault directory (default ~/.keyvault)")
	root.PersistentFlags().StringVarP(&password, "password", "p", "", "vault password (prompted when omitted)")

	root.AddCommand(createCmd(), unlockCmd(), statusCmd(), deleteCmd(), exportCmd(), importCmd())
	return root.Execute()
}

// getPassword returns the --password flag value or prompts for it without
// echo when stdin is a terminal.
func getPassword(prompt string) (string, error) {
	if password != "" {
		return password, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, prompt)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", fmt.Errorf("no password provided")
	}
	return scanner.Text(), nil
}
