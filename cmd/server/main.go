package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/config"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/handler"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/infra"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/repository"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/router"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/service"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := infra.NewDatabase(cfg.DatabaseURL, cfg.Env == "development")
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}

	redisClient, err := infra.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}

	renderer, err := infra.NewInvoicePDF(cfg.PDFStoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("invoice renderer")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	billRepo := repository.NewBillRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)

	// Background workers
	queue := worker.NewRedisQueue(redisClient)
	pool := worker.NewPool(queue, cfg.WorkerPoolSize)
	mailer := infra.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	pool.Register(worker.TaskSendEmail, worker.NewEmailHandler(mailer))
	pool.Start(ctx)

	// Services
	denylist := infra.NewRedisDenylist(redisClient)
	authSvc := service.NewAuthService(userRepo, denylist, cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	medicineSvc := service.NewMedicineService(medicineRepo)
	saleSvc := service.NewSaleService(saleRepo, medicineRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	billingSvc := service.NewBillingService(billRepo, medicineRepo, customerRepo, renderer, decimal.NewFromFloat(cfg.GSTPercentage))
	supplierSvc := service.NewSupplierService(supplierRepo, poRepo)
	poSvc := service.NewPurchaseOrderService(poRepo, supplierRepo, medicineRepo)
	notificationSvc := service.NewNotificationService(notificationRepo, medicineRepo, queue, cfg.AlertEmail)
	reportSvc := service.NewReportService(saleRepo, billRepo, medicineRepo, customerRepo)
	predictionSvc := service.NewPredictionService(predictionRepo, saleRepo)

	engine := router.New(router.Handlers{
		Health:        handler.NewHealthHandler(db, queue),
		Auth:          handler.NewAuthHandler(authSvc),
		Medicine:      handler.NewMedicineHandler(medicineSvc),
		Sale:          handler.NewSaleHandler(saleSvc),
		Customer:      handler.NewCustomerHandler(customerSvc),
		Billing:       handler.NewBillingHandler(billingSvc),
		Supplier:      handler.NewSupplierHandler(supplierSvc),
		PurchaseOrder: handler.NewPurchaseOrderHandler(poSvc),
		Notification:  handler.NewNotificationHandler(notificationSvc),
		Report:        handler.NewReportHandler(reportSvc),
		Prediction:    handler.NewPredictionHandler(predictionSvc),
	}, authSvc, cfg.Env)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	pool.Wait()
	if err := redisClient.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	log.Info().Msg("bye")
}
