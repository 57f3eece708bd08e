package http

import (
	"net/http"

	"peerfund-backend/internal/usecase/investment"

	"github.com/labstack/echo/v4"
)

type InvestmentHandler struct{ uc *investment.Usecase }

func NewInvestmentHandler(uc *investment.Usecase) *InvestmentHandler {
	return &InvestmentHandler{uc: uc}
}

type recordInvestmentReq struct {
	LenderID string `json:"lender_id" validate:"required,hex32"`
	Amount   int64  `json:"amount"    validate:"required,gt=0"`
}

func (h *InvestmentHandler) RecordInvestment(c echo.Context) error {
	loanID := c.Param("loan_id")
	var req recordInvestmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Record(c.Request().Context(), investment.RecordInput{
		LoanID:   loanID,
		LenderID: req.LenderID,
		Amount:   req.Amount,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InvestmentHandler) GetShares(c echo.Context) error {
	shares, err := h.uc.Shares(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": c.Param("loan_id"), "shares": shares})
}
