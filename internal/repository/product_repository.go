package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	//name/descriptionの部分一致
	Search string
	//カテゴリの完全一致
	Category string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	ListCategories(ctx context.Context) ([]string, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Count(ctx context.Context) (int64, error)
}
