package cmd

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// command for migrating database and seeding the protocol parameters
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "migrate database tables",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			cmd.PrintErrln("migrate database error:", err)
			return
		}

		// first run stores the configured parameters, later runs keep the amended ones
		store := provideParameterStore(providePropertyStore(database))
		params, err := store.Get(ctx)
		if err != nil {
			cmd.PrintErrln("read params error:", err)
			return
		}

		if err := store.Save(ctx, params); err != nil {
			cmd.PrintErrln("save params error:", err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
