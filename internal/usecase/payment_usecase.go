package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// 0.0〜1.0の乱数を返す約束（テストで固定できるように注入する）
type RandomSource interface {
	Float64() float64
}

// ダミー決済。外部ゲートウェイは呼ばず、確率で成功/失敗を返すだけ。
type PaymentUsecase struct {
	rand      RandomSource
	idGen     IDGenerator
	orderRepo repo.OrderRepository
}

func NewPaymentUsecase(rand RandomSource, idGen IDGenerator, orderRepo repo.OrderRepository) *PaymentUsecase {
	return &PaymentUsecase{rand: rand, idGen: idGen, orderRepo: orderRepo}
}

type ProcessPaymentInput struct {
	Amount     decimal.Decimal
	CardNumber string
	ExpiryDate string
	CVV        string

	//任意。指定があれば結果を注文に記録する。
	OrderID string
}

type PaymentResult struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	TransactionID string          `json:"transactionId,omitempty"`
	Amount        decimal.Decimal `json:"amount,omitempty"`
}

func (u *PaymentUsecase) ProcessPayment(ctx context.Context, in ProcessPaymentInput) (PaymentResult, error) {
	if in.Amount.IsZero() ||
		strings.TrimSpace(in.CardNumber) == "" ||
		strings.TrimSpace(in.ExpiryDate) == "" ||
		strings.TrimSpace(in.CVV) == "" {
		return PaymentResult{}, NewHTTPError(http.StatusBadRequest, "All payment details are required")
	}

	//成功率90%
	if u.rand.Float64() <= 0.1 {
		if err := u.recordOutcome(ctx, in.OrderID, model.PaymentStatusFailed); err != nil {
			return PaymentResult{}, err
		}
		return PaymentResult{
			Success: false,
			Message: "Payment failed. Please try again.",
		}, nil
	}

	if err := u.recordOutcome(ctx, in.OrderID, model.PaymentStatusPaid); err != nil {
		return PaymentResult{}, err
	}

	return PaymentResult{
		Success:       true,
		Message:       "Payment processed successfully",
		TransactionID: u.idGen.NewID(),
		Amount:        in.Amount,
	}, nil
}

// orderIdが指定されていれば決済結果を注文へ書き込む
func (u *PaymentUsecase) recordOutcome(ctx context.Context, orderID string, status model.PaymentStatus) error {
	if orderID == "" {
		return nil
	}

	err := u.orderRepo.UpdatePaymentStatus(ctx, orderID, status)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Error processing payment")
	}
	return nil
}
