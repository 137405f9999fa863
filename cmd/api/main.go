package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-analytics-api/internal/api"
	"github.com/vfg2006/ads-analytics-api/internal/config"
	"github.com/vfg2006/ads-analytics-api/internal/scheduler"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/reporting"
	"github.com/vfg2006/ads-analytics-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	authenticator := authenticating.NewService(cfg)

	tokenManager := metaclient.NewTokenManager(cfg)
	metaClient := metaclient.NewClient(cfg, tokenManager)
	metaIntegrator := meta.New(cfg, metaClient)

	reportService := reporting.NewService(metaIntegrator)

	tokenRefreshService := scheduler.NewTokenRefreshService(metaClient, cfg)
	if err := tokenRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de renovação de token")
	} else {
		logrus.Info("Agendador de renovação de token iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportService,
		metaIntegrator,
		metaIntegrator,
		authenticator,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
