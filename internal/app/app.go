package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freshmart/storefront/internal/auth"
	"github.com/freshmart/storefront/internal/dal/postgres"
	"github.com/freshmart/storefront/internal/dal/rabbitmq"
	auditrepo "github.com/freshmart/storefront/internal/dal/repositories/audit"
	loyaltyrepo "github.com/freshmart/storefront/internal/dal/repositories/loyalty/postgres"
	outboxrepo "github.com/freshmart/storefront/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/freshmart/storefront/internal/dal/repositories/product/postgres"
	promotionrepo "github.com/freshmart/storefront/internal/dal/repositories/promotion/postgres"
	storerepo "github.com/freshmart/storefront/internal/dal/repositories/store/postgres"
	userrepo "github.com/freshmart/storefront/internal/dal/repositories/user/postgres"
	"github.com/freshmart/storefront/internal/jaeger"
	"github.com/freshmart/storefront/internal/service/services/authsvc"
	"github.com/freshmart/storefront/internal/service/services/catalogsvc"
	"github.com/freshmart/storefront/internal/service/services/loyaltysvc"
	"github.com/freshmart/storefront/internal/service/services/ordersvc"
	"github.com/freshmart/storefront/internal/service/services/storesvc"
	httptransport "github.com/freshmart/storefront/internal/transport/http"
	"github.com/freshmart/storefront/internal/worker/outbox"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outbox.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	tracerShutdown func(ctx context.Context) error
}

// MustNewApp wires the storefront together.
func MustNewApp() *App {
	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()
	tracerShutdown := jaeger.MustSetup()

	pool := postgresClient.Pool()
	userRepo := userrepo.NewPostgresUserRepository(pool)
	loyaltyRepo := loyaltyrepo.NewPostgresLoyaltyRepository(pool)
	productRepo := productrepo.NewPostgresProductRepository(pool)
	promotionRepo := promotionrepo.NewPostgresPromotionRepository(pool)
	storeRepo := storerepo.NewPostgresStoreRepository(pool)
	outboxRepo := outboxrepo.NewOutboxRepository(pool)
	auditRepo := auditrepo.NewAuditRabbitMQRepository(rabbitClient)

	tokens := auth.MustNewTokenService()

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithAuditRepository(auditRepo),
		ordersvc.WithOutboxRepository(outboxRepo),
	)
	loyaltySvc := loyaltysvc.NewLoyaltyService(userRepo, loyaltyRepo)
	catalogSvc := catalogsvc.NewCatalogService(productRepo, promotionRepo)
	storeSvc := storesvc.NewStoreService(storeRepo)
	authSvc := authsvc.NewAuthService(userRepo, tokens)

	transport := httptransport.NewHTTPTransport(
		tokens,
		orderSvc,
		loyaltySvc,
		catalogSvc,
		storeSvc,
		authSvc,
	)
	transport.RegisterRoutes()

	outboxWorker := outbox.NewWorker(outboxRepo, rabbitClient)

	return &App{
		transport:      transport,
		outboxWorker:   outboxWorker,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		tracerShutdown: tracerShutdown,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()
	a.outboxWorker.Stop()

	if err := a.tracerShutdown(ctx); err != nil {
		slog.Error("Tracer shutdown error", "error", err)
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	a.postgresClient.Close()
	slog.Info("Application shutdown complete")
}
