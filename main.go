package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"catalog/pkg/config"
	"catalog/pkg/domain/service"
	"catalog/pkg/infrastructure/mysql"
	"catalog/transport"
)

const appID = "catalog"

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:   appID,
		Usage:  "e-commerce catalog REST API",
		Action: runServer,
	}
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("service terminated")
	}
}

func runServer(_ *cli.Context) error {
	cfg, err := config.Parse(appID)
	if err != nil {
		return err
	}

	db, err := mysql.Connect(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return err
	}

	tokens := service.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	categoryRepo := mysql.NewCategoryRepository(db)
	services := transport.Services{
		Orders:     service.NewOrderService(mysql.NewOrderRepository(db), mysql.NewOrderItemRepository(db)),
		Products:   service.NewProductService(mysql.NewProductRepository(db), categoryRepo),
		Categories: service.NewCategoryService(categoryRepo),
		Users:      service.NewUserService(mysql.NewUserRepository(db), tokens),
		Tokens:     tokens,
	}

	serverURL := ":" + cfg.Port
	log.WithFields(log.Fields{"url": serverURL}).Info("starting server")

	killSignalChan := getKillSignalChan()
	srv := startServer(serverURL, transport.Router(services, cfg.UploadDir))

	waitForKillSignalChan(killSignalChan)
	return srv.Shutdown(context.Background())
}

func startServer(serverURL string, router http.Handler) *http.Server {
	srv := &http.Server{Addr: serverURL, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()
	return srv
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignalChan(killSignalChan <-chan os.Signal) {
	killSignal := <-killSignalChan
	switch killSignal {
	case os.Interrupt:
		log.Info("got SIGINT...")
	case syscall.SIGTERM:
		log.Info("got SIGTERM...")
	}
}
