package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fitgrit/internal/config"
	myHTTP "github.com/MKhiriev/fitgrit/internal/handler/http"
	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/server"
	"github.com/MKhiriev/fitgrit/internal/service"
	"github.com/MKhiriev/fitgrit/internal/store"
	"github.com/MKhiriev/fitgrit/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("fitgrit-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services := service.NewServices(storages, cfg, log)

	handler, err := myHTTP.NewHandler(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating http handler")
	}

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	backgroundWorkers := workers.NewWorkers(storages, cfg.Workers, log)
	workersDone := make(chan struct{})
	go func() {
		backgroundWorkers.Run(ctx)
		close(workersDone)
	}()

	srv.RunServer()

	cancel()
	<-workersDone
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
