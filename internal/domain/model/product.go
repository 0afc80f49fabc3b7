package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	//通貨誤差を避けるためdecimalで保持
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	Image    string `gorm:"type:text" json:"image"`
	Category string `gorm:"type:varchar(100);index" json:"category"`
	Stock    int64  `gorm:"not null;default:0" json:"stock"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
