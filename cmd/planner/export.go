package main

import (
	"context"
	"io"
	"os"

	"github.com/sellergenix/inventory-service/config"
	invRepoPkg "github.com/sellergenix/inventory-service/internal/inventory/repository"
	invUCPkg "github.com/sellergenix/inventory-service/internal/inventory/usecase"
	"github.com/sellergenix/inventory-service/pkg/database/postgres"
	"github.com/sellergenix/inventory-service/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var merchantID, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a merchant's reorder plans as CSV",
		Long: `Connect to the inventory database (POSTGRES_* environment) and write every
active product's reorder plan as CSV, most urgent first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := root.policy()
			if err != nil {
				return err
			}

			cfg := config.LoadEnv()
			log := logger.NewZapLogger(cfg.LoggerOptions())
			defer log.Sync()

			db, err := postgres.NewPostgres(cfg.PostgresOptions())
			if err != nil {
				return err
			}
			defer db.Close()

			uc := invUCPkg.NewInventoryUseCase(invRepoPkg.NewPGRepository(db), nil, nil, nil, log, invUCPkg.Options{
				Policy:          policy,
				SalesWindowDays: cfg.Planner.SalesWindowDays,
			})

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if err := uc.ExportReorderPlans(context.Background(), merchantID, w); err != nil {
				return err
			}
			if outPath != "" {
				log.Info("Exported reorder plans", zap.String("merchant_id", merchantID), zap.String("file", outPath))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&merchantID, "merchant", "", "Merchant to export")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("merchant")
	return cmd
}
