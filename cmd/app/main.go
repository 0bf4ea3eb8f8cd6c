package main

import (
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"

	"github.com/wichananm65/wp-envconfig/internal/audit"
	"github.com/wichananm65/wp-envconfig/internal/config"
	"github.com/wichananm65/wp-envconfig/internal/constants"
	"github.com/wichananm65/wp-envconfig/internal/envfile"
	"github.com/wichananm65/wp-envconfig/internal/wpconfig"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid server configuration")
	}

	overlay, err := envfile.Load(cfg.EnvFile)
	if err != nil {
		log.WithError(err).Fatal("cannot read env file")
	}
	log.WithFields(log.Fields{
		"path":     overlay.Path,
		"found":    overlay.Found,
		"applied":  len(overlay.Applied),
		"shadowed": len(overlay.Shadowed),
	}).Info("env overlay loaded")

	set, err := wpconfig.NewLoader(wpconfig.OSLookup, cfg.LoaderOptions()).Build()
	if err != nil {
		fatalConfig(err)
	}
	log.WithFields(log.Fields{
		"load_id":     set.LoadID(),
		"environment": set.Environment(),
		"constants":   set.Len(),
	}).Info("configuration resolved")

	auditService := audit.NewService(mustOpenAuditRepository(cfg.AuditDatabaseURL))
	if _, err := auditService.Record(set, overlay); err != nil {
		log.WithError(err).Warn("could not record configuration load")
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler := constants.NewHandler(set, auditService)
	app.Use(requestLogger)
	handler.RegisterPublicRoutes(app)
	app.Use(constants.Protect(cfg.JWTSecret))
	handler.RegisterProtectedRoutes(app)

	log.WithField("addr", cfg.Addr).Info("starting server")
	if err := app.Listen(cfg.Addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func setupLogging(level string) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

// fatalConfig reports every missing variable by name before exiting.
func fatalConfig(err error) {
	var multi *wpconfig.MissingVariablesError
	if errors.As(err, &multi) {
		log.WithField("keys", multi.Keys()).Fatal(err.Error())
	}
	var missing *wpconfig.MissingRequiredVariableError
	if errors.As(err, &missing) {
		log.WithField("key", missing.Key).Fatal(err.Error())
	}
	log.WithError(err).Fatal("invalid configuration")
}

func mustOpenAuditRepository(dbURL string) audit.Repository {
	if dbURL == "" {
		return audit.NewInMemoryRepository()
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.WithError(err).Fatal("open audit database")
	}
	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("ping audit database")
	}

	repo := audit.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.WithError(err).Fatal("prepare audit schema")
	}
	return repo
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.WithFields(log.Fields{
		"method":   c.Method(),
		"url":      c.OriginalURL(),
		"status":   c.Response().StatusCode(),
		"duration": time.Since(start),
	}).Debug("request")
	return err
}
