package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/abeldan/authkit"
)

func main() {
	zl := zerolog.New(os.Stderr).With().Timestamp().Str("service", "authd").Logger()
	logger := authkit.NewZerologLogger(zl)

	if err := run(logger); err != nil {
		zl.Fatal().Err(err).Msg("authd exited")
	}
}

func run(logger authkit.Logger) error {
	cfg, err := authkit.LoadConfig()
	if err != nil {
		return err
	}

	key, err := authkit.DeriveKey(cfg.GetSigningSecret())
	if err != nil {
		return err
	}

	dsn := os.Getenv("AUTH_DATABASE_DSN")
	if dsn == "" {
		dsn = "file:authd.db?cache=shared&_fk=1"
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	store := authkit.NewUserStore(db).WithLogger(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.CreateSchema(ctx); err != nil {
		cancel()
		return err
	}
	cancel()

	tokens := authkit.NewTokenService(
		key,
		cfg.GetExpiryMinutes(),
		cfg.GetIssuer(),
		cfg.GetAudience(),
		logger,
	)

	auther := authkit.NewAuthenticator(store, tokens).WithLogger(logger)
	transport := authkit.NewCookieTransport(cfg)

	controller := authkit.NewAccountController(
		authkit.WithControllerLogger(logger),
		authkit.WithStore(store),
		authkit.WithAuthenticator(auther),
		authkit.WithTransport(transport),
		authkit.WithValidator(tokens),
	)

	app := fiber.New(fiber.Config{
		AppName:               "authd",
		DisableStartupMessage: true,
	})

	authkit.RegisterAccountRoutes(app, controller)

	addr := os.Getenv("AUTH_LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("authd listening", "addr", addr)
		errCh <- app.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}
