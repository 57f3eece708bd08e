package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "peerfund-backend/internal/adapter/http"
	"peerfund-backend/internal/adapter/middleware"
	"peerfund-backend/internal/adapter/repository/mysql"
	"peerfund-backend/internal/config"
	distDomain "peerfund-backend/internal/domain/distribution"
	invDomain "peerfund-backend/internal/domain/investment"
	loanDomain "peerfund-backend/internal/domain/loan"
	"peerfund-backend/internal/infrastructure/cache"
	"peerfund-backend/internal/infrastructure/db"
	investmentUC "peerfund-backend/internal/usecase/investment"
	loanUC "peerfund-backend/internal/usecase/loan"
	paymentUC "peerfund-backend/internal/usecase/payment"
	portfolioUC "peerfund-backend/internal/usecase/portfolio"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&loanDomain.Loan{},
		&loanDomain.Installment{},
		&invDomain.Investment{},
		&distDomain.Record{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	installmentRepo := mysql.NewInstallmentRepository(gdb)
	investmentRepo := mysql.NewInvestmentRepository(gdb)
	distributionRepo := mysql.NewDistributionRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	loanHandler := httpadp.NewLoanHandler(loanUC.NewUsecase(loanRepo, guow))
	investmentHandler := httpadp.NewInvestmentHandler(investmentUC.NewUsecase(guow))
	paymentHandler := httpadp.NewPaymentHandler(paymentUC.NewUsecase(guow))
	portfolioHandler := httpadp.NewPortfolioHandler(
		portfolioUC.NewUsecase(loanRepo, installmentRepo, investmentRepo, distributionRepo))
	h := httpadp.NewHandler()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	// mutating routes sit behind the redis idempotency guard
	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	loans := e.Group("/loans", idemp)
	loans.POST("", loanHandler.CreateLoan)
	loans.GET("/:loan_id", loanHandler.GetLoan)
	loans.POST("/:loan_id/approve", loanHandler.ApproveLoan)
	loans.POST("/:loan_id/reject", loanHandler.RejectLoan)
	loans.POST("/:loan_id/activate", loanHandler.ActivateLoan)
	loans.POST("/:loan_id/default", loanHandler.MarkDefaulted)
	loans.GET("/:loan_id/schedule", loanHandler.GetSchedule)
	loans.POST("/:loan_id/investments", investmentHandler.RecordInvestment)
	loans.GET("/:loan_id/shares", investmentHandler.GetShares)
	loans.POST("/:loan_id/payments", paymentHandler.RecordPayment)

	e.GET("/lenders/:lender_id/summary", portfolioHandler.LenderSummary)
	e.GET("/borrowers/:borrower_id/summary", portfolioHandler.BorrowerSummary)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
