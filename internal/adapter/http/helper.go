package http

import (
	"errors"
	"net/http"

	distDomain "peerfund-backend/internal/domain/distribution"
	invDomain "peerfund-backend/internal/domain/investment"
	loanDomain "peerfund-backend/internal/domain/loan"
	"peerfund-backend/internal/usecase/portfolio"
	"peerfund-backend/pkg/annuity"
)

// statusFor maps engine errors onto HTTP codes: validation errors → 400,
// missing things → 404, state-consistency violations → 409.
func statusFor(err error) int {
	switch {
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrInstallmentNotFound),
		errors.Is(err, portfolio.ErrUnknownLender):
		return http.StatusNotFound
	case errors.Is(err, annuity.ErrInvalidPrincipal),
		errors.Is(err, annuity.ErrInvalidTerm),
		errors.Is(err, annuity.ErrInvalidRate),
		errors.Is(err, loanDomain.ErrAmountMismatch),
		errors.Is(err, invDomain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, loanDomain.ErrAlreadyPaid),
		errors.Is(err, loanDomain.ErrOutOfOrderPayment),
		errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, loanDomain.ErrNotActive),
		errors.Is(err, loanDomain.ErrPendingLoanExists),
		errors.Is(err, loanDomain.ErrScheduleNotGenerated),
		errors.Is(err, invDomain.ErrOverfunding),
		errors.Is(err, invDomain.ErrFundingClosed),
		errors.Is(err, invDomain.ErrNoInvestments),
		errors.Is(err, distDomain.ErrAlreadyDistributed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
