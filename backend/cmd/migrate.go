package cmd

import (
	"examportal/backend/utils"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		// InitDB migrates on open.
		_, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer utils.CloseDB(db)

		logger.Printf("Schema is up to date")
		return nil
	},
}
