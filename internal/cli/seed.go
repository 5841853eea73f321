package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command. Migrations run as part of opening
// the store.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "seed",
		Short:        "Run migrations and insert default data into empty tables",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.maintenance.Seed(cmd.Context()); err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"status": "seeded"})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database migrated and seeded")
			return nil
		},
	}
}
