// Command planner runs the reorder planner from a terminal: one-off plans for
// a typed-in snapshot, the effective policy, and merchant-wide CSV exports.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	policyFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Inventory reorder planner",
		Long: `Compute reorder plans from stock levels and sales velocity.

Available subcommands:
  plan   - Plan a single product from flags
  policy - Print the effective planning policy
  export - Write a merchant's reorder plans as CSV`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.policyFile, "policy", os.Getenv("PLANNER_POLICY_FILE"), "YAML file overriding the planning thresholds")

	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newPolicyCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	return rootCmd
}

func (o *rootOptions) policy() (reorder.Policy, error) {
	return reorder.LoadPolicy(o.policyFile)
}

func newPolicyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the effective planning policy as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := root.policy()
			if err != nil {
				return err
			}
			out, err := policy.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
