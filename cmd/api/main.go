package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/Peminjaman-api/docs"
	"github.com/jhoicas/Peminjaman-api/internal/application/auth"
	"github.com/jhoicas/Peminjaman-api/internal/application/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/cache"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Peminjaman-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/Peminjaman-api/internal/interfaces/http"
	"github.com/jhoicas/Peminjaman-api/pkg/config"
	"github.com/jhoicas/Peminjaman-api/pkg/logger"
)

// keyStore revocación de tokens + claves de idempotencia (Redis o memoria).
type keyStore interface {
	auth.TokenRevoker
	loan.IdempotencyStore
}

// @title                       Peminjaman API
// @version                     1.0
// @description                 Inventario de equipos y préstamos con devoluciones parciales.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer st.Close()

	// Revocación e idempotencia: Redis si está configurado, si no memoria del proceso.
	var (
		keys      keyStore
		redisPing func(context.Context) error
	)
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer func() { _ = rdb.Close() }()
		redisStore := cache.NewRedisStore(rdb)
		keys, redisPing = redisStore, redisStore.Ping
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: revocación e idempotencia en memoria del proceso")
		keys = cache.NewMemoryStore()
	}

	var recorder loan.Recorder
	var promMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		promMetrics = metrics.New("peminjaman")
		recorder = promMetrics
	}

	authUC := auth.NewAuthUseCase(st.Users, keys, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	komoditasUC := inventory.NewKomoditasUseCase(st.TxRunner, st.Komoditas)
	loanUC := loan.NewLoanUseCase(
		st.TxRunner, st.Loans, inventory.NewReconciler(),
		keys, cfg.App.IdempotencyTTL, recorder, log.Component("loan"),
	)
	receiptUC := loan.NewReceiptUseCase(st.Loans, infrapdf.NewReceiptGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		AllowMethods:     "GET,POST,PATCH,OPTIONS",
		AllowCredentials: cfg.HTTP.CORSOrigins != "*",
	}))
	if promMetrics != nil {
		app.Use(promMetrics.Middleware())
		app.Get("/metrics", promMetrics.Handler())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Peminjaman API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		checks := fiber.Map{"store": "ok"}
		status := fiber.StatusOK
		if err := st.Ping(c.Context()); err != nil {
			checks["store"] = err.Error()
			status = fiber.StatusServiceUnavailable
		}
		if redisPing != nil {
			checks["redis"] = "ok"
			if err := redisPing(c.Context()); err != nil {
				checks["redis"] = err.Error()
				status = fiber.StatusServiceUnavailable
			}
		}
		overall := "ok"
		if status != fiber.StatusOK {
			overall = "degraded"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":  overall,
			"service": cfg.App.Name,
			"driver":  st.Driver,
			"checks":  checks,
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		KomoditasUC:  komoditasUC,
		LoanUC:       loanUC,
		ReceiptUC:    receiptUC,
		CookieSecure: cfg.HTTP.CookieSecure,
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
