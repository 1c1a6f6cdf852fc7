package cmd

import (
	"fmt"
	"text/tabwriter"

	"chrono/internal/curve"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "print ltv and liquidation threshold by duration, using the configured parameters",
	Run: func(cmd *cobra.Command, args []string) {
		engine := curve.New(cfg.Params)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MINUTES\tLTV\tLT")
		for _, p := range engine.Points() {
			fmt.Fprintf(w, "%d\t%s\t%s\n", p.Minutes, p.LTV.StringFixed(6), p.LT.StringFixed(6))
		}
		w.Flush()

		if v, _ := cmd.Flags().GetString("utilization"); v != "" {
			u, err := decimal.NewFromString(v)
			if err != nil {
				cmd.PrintErrln("invalid utilization:", err)
				return
			}

			cmd.Printf("utilization %s: borrow apy %s, supply apy %s\n",
				u, engine.BorrowAPY(u).StringFixed(6), engine.SupplyAPY(u).StringFixed(6))
		}
	},
}

func init() {
	rootCmd.AddCommand(curveCmd)
	curveCmd.Flags().StringP("utilization", "u", "", "also print the rates at this utilization")
}
