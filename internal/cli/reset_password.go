package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResetPasswordCommand creates the reset-password command.
func NewResetPasswordCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "reset-password <username> <password>",
		Short:        "Set a new password for a user",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.auth.ResetPassword(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to reset password for %s: %w", args[0], err)
			}

			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"username": args[0], "status": "updated"})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password for %s has been reset\n", args[0])
			return nil
		},
	}
}
