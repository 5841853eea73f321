package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// NewCheckDBCommand creates the check-db command.
func NewCheckDBCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "check-db",
		Short:        "Print row counts and accounts without a password",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.maintenance.Check(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, report)
			}

			tables := make([]string, 0, len(report.Tables))
			for name := range report.Tables {
				tables = append(tables, name)
			}
			sort.Strings(tables)
			for _, name := range tables {
				fmt.Fprintf(out, "%-20s %d\n", name, report.Tables[name])
			}
			if len(report.UsersWithoutPassword) == 0 {
				fmt.Fprintln(out, "all users have a password")
				return nil
			}
			for _, u := range report.UsersWithoutPassword {
				fmt.Fprintf(out, "user without password: %s\n", u)
			}
			return nil
		},
	}
}
