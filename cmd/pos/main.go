package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/bookshop-pos/internal/application/auth"
	appbilling "github.com/jhoicas/bookshop-pos/internal/application/billing"
	"github.com/jhoicas/bookshop-pos/internal/application/usecase"
	"github.com/jhoicas/bookshop-pos/internal/domain/phone"
	"github.com/jhoicas/bookshop-pos/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/bookshop-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/bookshop-pos/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/bookshop-pos/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/bookshop-pos/internal/interfaces/http"
	"github.com/jhoicas/bookshop-pos/pkg/config"
	"github.com/jhoicas/bookshop-pos/pkg/i18n"
	"github.com/jhoicas/bookshop-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Str("session_driver", cfg.Session.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Métricas: llamadas al backend + runtime de Go
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout,
		backend.WithMetrics(backend.NewMetrics(reg)),
		backend.WithLogger(log.Component("backend")),
	)

	plan := phone.Plan{CountryCode: cfg.Locale.CountryCode, Digits: cfg.Locale.PhoneDigits}
	tr := i18n.New(cfg.Locale.Lang, cfg.Locale.Currency)

	customerRepo := backend.NewCustomerClient(client)
	itemRepo := backend.NewItemClient(client)
	userRepo := backend.NewUserClient(client)
	billRepo := backend.NewBillClient(client)

	customerUC := usecase.NewCustomerUseCase(customerRepo, plan)
	itemUC := usecase.NewItemUseCase(itemRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(backend.NewAuthClient(client))
	billUC := appbilling.NewBillUseCase(billRepo, customerRepo, itemRepo, plan)

	// PDF: recibo imprimible de la factura
	receiptGen := infrapdf.NewReceiptGenerator(cfg.App.ShopName, tr.Money, plan.Format)
	receiptUC := appbilling.NewReceiptUseCase(billUC, receiptGen)

	// Almacenamiento de sesiones según SESSION_DRIVER
	var (
		storage fiber.Storage
		rdb     *goredis.Client
		pool    *pgxpool.Pool
	)
	if cfg.Redis.Enabled() {
		rdb, err = infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			if cfg.Session.Driver == config.SessionRedis {
				log.Fatal().Err(err).Msg("conexión a Redis")
			}
			log.Warn().Err(err).Msg("Redis no disponible; rate limit en memoria")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}
	switch cfg.Session.Driver {
	case config.SessionRedis:
		storage = infraredis.NewSessionStorage(rdb, "pos:session:")
	case config.SessionPostgres:
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de PostgreSQL")
		}
		pgStorage := postgres.NewSessionStorage(pool, 10*time.Minute)
		defer pgStorage.Close()
		storage = pgStorage
		// Diario local de facturas emitidas (totales del día en /home)
		billUC.WithJournal(postgres.NewBillJournal(pool))
	}

	httpLog := log.Component("http")
	renderer := httpRouter.NewRenderer(tr, cfg.App.ShopName, httpLog)
	sessions := httpRouter.NewSessionStore(httpRouter.SessionConfig{
		Storage:    storage,
		CookieName: cfg.Session.CookieName,
		Expiration: cfg.Session.Expiration,
		Secure:     cfg.Session.Secure,
	}, log.Component("session"))

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:     cfg.App.Name,
		Views:    httpRouter.NewViews(tr, plan),
		Renderer: renderer,
		Sessions: sessions,
		Log:      httpLog,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.Docs.Enabled {
		if _, err := os.Stat(cfg.Docs.FilePath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.Docs.FilePath,
				Path:     "docs",
				Title:    cfg.App.ShopName + " POS",
			}))
		} else {
			log.Warn().Str("file", cfg.Docs.FilePath).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CustomerUC: customerUC,
		ItemUC:     itemUC,
		UserUC:     userUC,
		BillUC:     billUC,
		ReceiptUC:  receiptUC,
		Renderer:   renderer,
		Limiter:    httpRouter.NewLoginLimiter(rdb, cfg.RateLimit.LoginPerMinute, log.Component("ratelimit")),
		Log:        httpLog,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
