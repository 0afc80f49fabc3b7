package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ダミー決済API
type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type processPaymentRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	CardNumber string          `json:"cardNumber"`
	ExpiryDate string          `json:"expiryDate"`
	CVV        string          `json:"cvv"`
	OrderID    string          `json:"orderId"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/payment/process", h.process)
}

func (h *PaymentHandler) process(c echo.Context) error {
	var req processPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "All payment details are required"})
	}

	result, err := h.uc.ProcessPayment(c.Request().Context(), usecase.ProcessPaymentInput{
		Amount:     req.Amount,
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
		OrderID:    req.OrderID,
	})
	if err != nil {
		return writeError(c, err)
	}

	//失敗時もbodyはそのまま返す（successフラグで判定させる）
	if !result.Success {
		return c.JSON(http.StatusBadRequest, result)
	}
	return c.JSON(http.StatusOK, result)
}
