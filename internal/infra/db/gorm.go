package db

import (
	"os"
	"path/filepath"

	"storefront/internal/domain/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect はDBファイルに接続して *gorm.DB を返す。
func Connect(path string) (*gorm.DB, error) {
	//親ディレクトリがなければ作る
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// Migrate はテーブルを作成する。
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	)
}
