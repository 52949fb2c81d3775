package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/spf13/cobra"
)

type planOptions struct {
	snapshot   reorder.InventorySnapshot
	dailySales float64
	asOf       string
	asJSON     bool
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a single product from flags",
		Long: `Plan a single product from its stock and velocity.

Leave --daily-sales unset to see the plan for a product without sales data.`,
		Example: `  planner plan --fba 300 --daily-sales 5 --lead-time 10 --buffer 5
  planner plan --fba 100 --daily-sales 10 --lead-time 30 --buffer 14 --as-of 2026-03-10 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("daily-sales") {
				v := opts.dailySales
				opts.snapshot.AvgDailySales = &v
			}
			return runPlan(cmd.OutOrStdout(), root, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.snapshot.FBAStock, "fba", 0, "Units held in Amazon fulfillment centers")
	f.IntVar(&opts.snapshot.FBMStock, "fbm", 0, "Units held in the seller's warehouse")
	f.Float64Var(&opts.dailySales, "daily-sales", 0, "Average units sold per day")
	f.IntVar(&opts.snapshot.LeadTimeDays, "lead-time", 0, "Supplier lead time in days")
	f.IntVar(&opts.snapshot.SafetyBufferDays, "buffer", 0, "Safety buffer in days")
	f.StringVar(&opts.asOf, "as-of", "", "Planning date YYYY-MM-DD (default today)")
	f.BoolVar(&opts.asJSON, "json", false, "Print the plan as JSON")
	return cmd
}

func runPlan(w io.Writer, root *rootOptions, opts *planOptions) error {
	policy, err := root.policy()
	if err != nil {
		return err
	}

	asOf := time.Now()
	if opts.asOf != "" {
		d, err := reorder.ParseDate(opts.asOf)
		if err != nil {
			return err
		}
		asOf = d.Time
	}

	plan := reorder.ComputePlan(opts.snapshot, policy, asOf)

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	return printPlan(w, plan)
}

func printPlan(w io.Writer, p reorder.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Status:\t%s\n", p.ReorderStatus)
	fmt.Fprintf(tw, "Days of stock:\t%s (FBA %s, FBM %s)\n", orDash(p.TotalDaysOfStock), orDash(p.DaysOfFBAStock), orDash(p.DaysOfFBMStock))
	fmt.Fprintf(tw, "Days until reorder:\t%s\n", orDash(p.DaysUntilReorder))
	reorderDate := p.DateString()
	if reorderDate == "" {
		reorderDate = "-"
	}
	fmt.Fprintf(tw, "Reorder date:\t%s\n", reorderDate)
	fmt.Fprintf(tw, "Ideal stock:\t%s units (%s%% of ideal)\n", orDash(p.IdealStockUnits), orDash(p.CurrentStockVsIdeal))
	fmt.Fprintf(tw, "Units to order:\t%s\n", orDash(p.UnitsToOrder))
	fmt.Fprintf(tw, "Recommendation:\t%s\n", p.OrderRecommendation)
	return tw.Flush()
}

func orDash(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
