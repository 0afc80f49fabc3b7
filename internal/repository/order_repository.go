package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	//新しい順で返す
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) error
	UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error
}
