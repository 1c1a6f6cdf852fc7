package cmd

import (
	"encoding/json"
	"os"

	"chrono/service/params"

	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "show or amend the protocol parameters",
}

var paramsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "print the protocol parameters in effect",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		p, err := provideParameterStore(providePropertyStore(database)).Get(ctx)
		if err != nil {
			cmd.PrintErrln("read params error:", err)
			return
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		_ = enc.Encode(p)
	},
}

var paramsSetCmd = &cobra.Command{
	Use:   "set <file.json>",
	Short: "amend the protocol parameters, missing fields keep their current value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			cmd.PrintErrln("read file error:", err)
			return
		}

		database := provideDatabase()
		defer database.Close()

		store := provideParameterStore(providePropertyStore(database))
		current, err := store.Get(ctx)
		if err != nil {
			cmd.PrintErrln("read params error:", err)
			return
		}

		amended, err := params.Decode(string(data), *current)
		if err != nil {
			cmd.PrintErrln("invalid params:", err)
			return
		}

		if err := store.Save(ctx, amended); err != nil {
			cmd.PrintErrln("save params error:", err)
			return
		}

		cmd.Println("params amended, workers pick them up on their next batch")
	},
}

func init() {
	paramsCmd.AddCommand(paramsShowCmd, paramsSetCmd)
	rootCmd.AddCommand(paramsCmd)
}
