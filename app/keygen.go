package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ajadmin/ajadmin/internal/auth"
)

const (
	privateKeyFile = "private.pem"
	publicKeyFile  = "public.pem"
)

func init() { //nolint: gochecknoinits
	keygenCmd.Flags().IntVar(&keyBits, "bits", 2048, "RSA key size")
	keygenCmd.Flags().StringVar(&keyOut, "out", "./etc/jwt", "directory the key pair is written to")

	rootCmd.AddCommand(keygenCmd)
}

var (
	keyBits int
	keyOut  string

	keygenCmd = &cobra.Command{
		Use:   "keygen",
		Short: "Write a new RS256 key pair for bearer tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeKeyPair(cmd, keyOut, keyBits)
		},
	}
)

func writeKeyPair(cmd *cobra.Command, dir string, bits int) error {
	privatePEM, publicPEM, err := auth.GenerateKeyPair(bits)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	if err = os.WriteFile(filepath.Join(dir, privateKeyFile), privatePEM, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	if err = os.WriteFile(filepath.Join(dir, publicKeyFile), publicPEM, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write public key: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "key pair written to %s\n", dir)

	return nil
}
