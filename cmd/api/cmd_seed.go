package main

import (
	"storefront/internal/config"
	"storefront/internal/infra/db"

	"github.com/spf13/cobra"
)

// storefront seed — テーブル作成と初期カタログ投入だけ行う。
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create tables and seed the product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		gormDB, err := db.Connect(cfg.DatabasePath)
		if err != nil {
			return err
		}
		if err := db.Migrate(gormDB); err != nil {
			return err
		}

		return db.SeedProducts(gormDB)
	},
}
