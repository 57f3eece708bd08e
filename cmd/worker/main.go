package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peerfund-backend/internal/adapter/repository/mysql"
	"peerfund-backend/internal/config"
	"peerfund-backend/internal/infrastructure/cache"
	"peerfund-backend/internal/infrastructure/db"
	"peerfund-backend/internal/schedule"
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
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	installmentRepo := mysql.NewInstallmentRepository(gdb)
	investmentRepo := mysql.NewInvestmentRepository(gdb)
	distributionRepo := mysql.NewDistributionRepository(gdb)

	snapshotter := schedule.NewPortfolioSnapshotter(
		portfolioUC.NewUsecase(loanRepo, installmentRepo, investmentRepo, distributionRepo),
		investmentRepo,
		rdb,
		time.Duration(cfg.SnapshotTTLSecs)*time.Second,
	)
	c, err := snapshotter.Start(cfg.SnapshotCron)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Stop()

	log.Printf("portfolio snapshot worker running (%s)", cfg.SnapshotCron)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")
}
