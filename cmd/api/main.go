package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"makeupsales/internal/config"
	"makeupsales/internal/handler"
	"makeupsales/internal/infra/db"
	infraRepo "makeupsales/internal/infra/repository"
	"makeupsales/internal/logging"
	"makeupsales/internal/middleware"
	"makeupsales/internal/server"
	"makeupsales/internal/usecase"
	auth "makeupsales/internal/usecase/auth_usecase"
	"makeupsales/internal/viewstate"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	accessTTL = 15 * time.Minute
	//ダッシュボードの在庫少の基準（通知のしきい値とは別）
	dashboardLowStock = 5
)

func main() {
	//.envは任意
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logging.New(cfg.GoEnv)

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	version, err := db.Migrate(gormDB)
	if err != nil {
		return err
	}
	log.Info("database ready", "driver", cfg.DBDriver, "schema_version", version)

	//Repository（GORM実装）生成
	feed := infraRepo.NewChangeFeed(log)
	productRepo := infraRepo.NewProductGormRepository(gormDB, feed)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB, feed)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB, feed)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB, feed)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB, feed)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB, feed)

	//メトリクス
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	//Usecase生成
	clock := usecase.SystemClock{}
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, orderItemRepo,
		usecase.WithStrictStock(cfg.StrictStock),
		usecase.WithRecorder(metrics),
	)
	productUC := usecase.NewProductUsecase(txm, productRepo, inventoryRepo, cfg.LowStockThreshold)
	customerUC := usecase.NewCustomerUsecase(customerRepo)
	reminderUC := usecase.NewReminderUsecase(orderRepo, productRepo, cfg.LowStockThreshold)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	registerUC := auth.NewRegisterUserUsecase(userRepo, auth.NewBcryptPasswordHasher(12), clock)
	loginUC := auth.NewLoginUsecase(userRepo, auth.NewBcryptPasswordVerifier(), auth.NewJWTIssuer(cfg.JWTSecret, accessTTL), clock)

	//ライブビュー
	productsState := viewstate.NewProductsState(productRepo, productUC, log)
	customersState := viewstate.NewCustomersState(customerRepo, customerUC, log)
	ordersState := viewstate.NewOrdersState(orderRepo, orderUC, log)
	for _, st := range []interface {
		Start(context.Context) error
		Close()
	}{productsState, customersState, ordersState} {
		if err := st.Start(ctx); err != nil {
			return err
		}
		defer st.Close()
	}
	dashboardState := viewstate.NewDashboardState(productsState, customersState, ordersState, dashboardLowStock)

	go viewstate.RunReminders(ctx, reminderUC, viewstate.ReminderConfig{
		Interval:   cfg.ReminderInterval,
		MaxRetries: 3,
		RetryDelay: 5 * time.Second,
	}, log)

	//Handler生成
	e := server.New(log, metrics)
	server.RegisterRoutes(e, server.Handlers{
		Auth:      handler.NewAuthHandler(registerUC, loginUC),
		Product:   handler.NewProductHandler(productsState, productUC),
		Customer:  handler.NewCustomerHandler(customersState),
		Order:     handler.NewOrderHandler(ordersState, orderUC, productUC),
		Dashboard: handler.NewDashboardHandler(dashboardState),
		Reminder:  handler.NewReminderHandler(reminderUC),
		AuditLog:  handler.NewAuditLogHandler(auditUC),
	}, cfg.JWTSecret, userRepo, reg)

	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	return server.Start(ctx, e, addr, log)
}
