package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-relay/core/config"
	"payment-relay/core/loader"
	"payment-relay/core/logger"
	"payment-relay/core/metrics"
	"payment-relay/core/middleware/auth"
	"payment-relay/core/middleware/rayid"
	"payment-relay/core/provision"
	"payment-relay/feature/integrity"
	"payment-relay/feature/provisioning"
	"payment-relay/feature/relay"
	"payment-relay/feature/vault"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "payment-relay/docs/swagger"
)

// @title Payment Relay API
// @version 1.0
// @description Relays payment gateway requests and keeps the audit log schema provisioned.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the payment relay server",
	Long:  `Starts the HTTP server, provisions the schema when enabled and initializes all features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newDeps(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize", zap.Error(err))
		}

		// A failed startup provisioning is not fatal; requests retry it.
		if err := a.provisioner.WaitReady(ctx, provision.StartupBackOff(cfg.Provisioning.StartupRetries)); err != nil {
			logg.Warn("Startup provisioning failed", zap.Error(err))
		}

		relaySvc, err := a.relayService()
		if err != nil {
			logg.Fatal("Failed to create gateway client", zap.Error(err))
		}

		metrics.Register()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(provisioning.NewFeature(a.provisioner, logg))
		mgr.Register(integrity.NewFeature(a.provisioner, a.integrityOptions(), logg))
		mgr.Register(relay.NewFeature(relaySvc, a.archiveReader(), logg))

		var dispatcher vault.Dispatcher = vault.NewLocalDispatcher(relaySvc)
		if cfg.Vault.RelayFunctionID != "" && a.platform != nil {
			dispatcher = vault.NewFunctionDispatcher(a.platform, cfg.Vault.RelayFunctionID)
		}
		if a.platform != nil {
			mgr.Register(vault.NewFeature(cfg.Vault, vault.NewService(a.platform, dispatcher, logg), logg))
		} else {
			logg.Info("Vault sync disabled: appwrite.project_id is not set")
		}

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request completed", fields...)
			return nil
		})

		// Public routes
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", metrics.Handler())
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("store", cfg.Store.Backend),
				zap.String("database", cfg.Provisioning.DatabaseName),
			)
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Shutdown did not complete", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
