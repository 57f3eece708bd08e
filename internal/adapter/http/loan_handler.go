package http

import (
	"net/http"
	"time"

	"peerfund-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID      string  `json:"borrower_id"       validate:"required,hex32"`
	Principal       int64   `json:"principal"         validate:"required,gt=0"`
	AnnualRatePct   float64 `json:"annual_rate_pct"   validate:"gte=0"`
	TermMonths      int     `json:"term_months"       validate:"required,gt=0"`
	PlatformFeeRate float64 `json:"platform_fee_rate" validate:"feerate"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput(req))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

type approveLoanReq struct {
	ValidatorEmployeeID string `json:"validator_employee_id" validate:"required,hex32"`
	// Canonical date `YYYY-MM-DD` (aligns with schema DATE)
	ApprovalDate string `json:"approval_date"         validate:"required,datetime=2006-01-02"`
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	var req approveLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	when, _ := time.Parse("2006-01-02", req.ApprovalDate)
	dto, err := h.uc.Approve(c.Request().Context(), loan.ApproveInput{
		LoanID:              loanID,
		ValidatorEmployeeID: req.ValidatorEmployeeID,
		ApprovalDate:        when,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) MarkDefaulted(c echo.Context) error {
	dto, err := h.uc.MarkDefaulted(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

type activateLoanReq struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

func (h *LoanHandler) ActivateLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	var req activateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	start, _ := time.Parse("2006-01-02", req.StartDate)
	dto, err := h.uc.Activate(c.Request().Context(), loan.ActivateInput{LoanID: loanID, StartDate: start})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetSchedule(c echo.Context) error {
	dto, err := h.uc.GetSchedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}
