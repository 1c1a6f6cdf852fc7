package cmd

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "print the protocol snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		params, err := provideParameterStore(providePropertyStore(database)).Get(ctx)
		if err != nil {
			cmd.PrintErrln("read params error:", err)
			return
		}

		snapshot, err := provideReportService(provideLedger(database), *params).Snapshot(ctx, time.Now())
		if err != nil {
			cmd.PrintErrln("snapshot error:", err)
			return
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		_ = enc.Encode(snapshot)
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}
