package http

import (
	"net/http"
	"time"

	"peerfund-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	InstallmentNumber int    `json:"installment_number" validate:"required,gt=0"`
	PaidDate          string `json:"paid_date"          validate:"required,datetime=2006-01-02"`
	Amount            int64  `json:"amount"             validate:"required,gt=0"`
}

func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	loanID := c.Param("loan_id")
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	paidDate, _ := time.Parse("2006-01-02", req.PaidDate)
	dto, err := h.uc.Record(c.Request().Context(), payment.RecordInput{
		LoanID:            loanID,
		InstallmentNumber: req.InstallmentNumber,
		PaidDate:          paidDate,
		Amount:            req.Amount,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}
