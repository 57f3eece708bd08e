package http

import (
	"net/http"

	"peerfund-backend/internal/usecase/portfolio"

	"github.com/labstack/echo/v4"
)

type PortfolioHandler struct{ uc *portfolio.Usecase }

func NewPortfolioHandler(uc *portfolio.Usecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) LenderSummary(c echo.Context) error {
	lenderID := c.Param("lender_id")
	if !reHex32.MatchString(lenderID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lender_id"})
	}
	dto, err := h.uc.SummarizeLender(c.Request().Context(), lenderID)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PortfolioHandler) BorrowerSummary(c echo.Context) error {
	borrowerID := c.Param("borrower_id")
	if !reHex32.MatchString(borrowerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower_id"})
	}
	dto, err := h.uc.SummarizeBorrower(c.Request().Context(), borrowerID)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}
