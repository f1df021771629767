package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajadmin/ajadmin/internal/daemon"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(bootstrapCmd)
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the Super Admin role and user if no user exists",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		created, err := daemon.Bootstrap(&c)
		if err != nil {
			return err
		}

		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "User Created: %s\n", c.Bootstrap.Email)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "User Already Exists")
		}

		return nil
	},
}
