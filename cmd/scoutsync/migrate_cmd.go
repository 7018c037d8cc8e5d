package main

import (
	"fmt"

	"github.com/spf13/cobra"

	advpersistence "github.com/scoutsync/scoutsync/modules/advancement/infrastructure/persistence"
	"github.com/scoutsync/scoutsync/modules/roster/infrastructure/persistence"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, pool, err := openPool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			// Roster first: advancement records reference members.
			for _, ddl := range []string{
				persistence.SchemaSQL(),
				advpersistence.SchemaSQL(),
			} {
				if _, err := pool.Exec(ctx, ddl); err != nil {
					return withCode(exitDBWrite, fmt.Errorf("apply schema: %w", err))
				}
			}
			return writeJSONLine(map[string]any{"migrated": true})
		},
	}
}
