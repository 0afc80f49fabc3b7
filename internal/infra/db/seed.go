package db

import (
	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 初期カタログ。productsが空のときだけ投入する。
func SeedProducts(gormDB *gorm.DB) error {
	var count int64
	if err := gormDB.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []model.Product{
		{ID: "1", Name: "Laptop", Description: `High-performance laptop with 16GB RAM, 512GB SSD, and 15.6" Full HD display. Perfect for work and entertainment.`, Price: price("999.99"), Category: "Electronics", Stock: 10, Image: "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400&h=300&fit=crop"},
		{ID: "2", Name: "Smartphone", Description: `Latest smartphone with 6.5" AMOLED display, 128GB storage, 48MP camera, and all-day battery life.`, Price: price("699.99"), Category: "Electronics", Stock: 15, Image: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400&h=300&fit=crop"},
		{ID: "3", Name: "Headphones", Description: "Premium wireless noise-cancelling headphones with 30-hour battery life and Hi-Res Audio support.", Price: price("199.99"), Category: "Electronics", Stock: 20, Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=300&fit=crop"},
		{ID: "4", Name: "Tablet", Description: `Portable 10.9" tablet with M1 chip, 256GB storage, and Apple Pencil support for creative professionals.`, Price: price("449.99"), Category: "Electronics", Stock: 12, Image: "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=400&h=300&fit=crop"},
		{ID: "5", Name: "Smart Watch", Description: "Feature-rich smartwatch with heart rate monitor, GPS, sleep tracking, and 7-day battery life.", Price: price("299.99"), Category: "Electronics", Stock: 18, Image: "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=400&h=300&fit=crop"},
		{ID: "6", Name: "USB-C Cable", Description: "Premium braided USB-C to USB-C fast charging cable, 6ft length, supports 100W Power Delivery.", Price: price("19.99"), Category: "Accessories", Stock: 50, Image: "https://images.unsplash.com/photo-1572721546624-05bf65ad7679?w=400&h=300&fit=crop"},
		{ID: "7", Name: "Screen Protector", Description: "9H hardness tempered glass screen protector with anti-fingerprint coating and easy bubble-free installation.", Price: price("12.99"), Category: "Accessories", Stock: 40, Image: "https://images.unsplash.com/photo-1601784551446-20c9e07cdbdb?w=400&h=300&fit=crop"},
		{ID: "8", Name: "Phone Case", Description: "Military-grade drop protection phone case with slim profile, raised edges, and wireless charging compatibility.", Price: price("24.99"), Category: "Accessories", Stock: 35, Image: "https://images.unsplash.com/photo-1541877944-ac82a091518a?w=400&h=300&fit=crop"},
	}

	return gormDB.Create(&products).Error
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
