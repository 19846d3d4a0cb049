package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ashabelnikov/file-pipeline/config"
	"github.com/ashabelnikov/file-pipeline/internal/controller/events"
	"github.com/ashabelnikov/file-pipeline/internal/controller/restapi"
	"github.com/ashabelnikov/file-pipeline/internal/controller/worker/reclaimer"
	infrakafka "github.com/ashabelnikov/file-pipeline/internal/infrastructure/kafka"
	"github.com/ashabelnikov/file-pipeline/internal/infrastructure/transcoder"
	"github.com/ashabelnikov/file-pipeline/internal/repo/persistent"
	"github.com/ashabelnikov/file-pipeline/internal/usecase/file"
	"github.com/ashabelnikov/file-pipeline/internal/usecase/ingest"
	"github.com/ashabelnikov/file-pipeline/internal/usecase/transcode"
	"github.com/ashabelnikov/file-pipeline/pkg/httpserver"
	"github.com/ashabelnikov/file-pipeline/pkg/kafka/consumer"
	"github.com/ashabelnikov/file-pipeline/pkg/kafka/producer"
	"github.com/ashabelnikov/file-pipeline/pkg/logger"
	"github.com/ashabelnikov/file-pipeline/pkg/postgres"
	"github.com/ashabelnikov/file-pipeline/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	objectRepo := persistent.NewObjectRepo(s3c, cfg.S3.Bucket)
	metadataRepo := persistent.NewFileMetadataRepo(pg, cfg.PG.Table)

	// Kafka Producer
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}
	eventProducer := infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic)

	// Use-Case

	// file use-case
	fileUseCase := file.New(
		objectRepo,
		metadataRepo,
		eventProducer,
		l,
		cfg.S3.Bucket,
		cfg.Pipeline.OriginalPrefix,
		cfg.Pipeline.ProcessedPrefix,
		cfg.Upload.URLTTL,
		cfg.Upload.DownloadURLTTL,
		cfg.Upload.RecordTTL,
	)

	// transcode use-case
	transcodeUseCase := transcode.New(
		transcoder.NewImage(cfg.Pipeline.ImageMaxWidth, cfg.Pipeline.ImageQuality),
		transcoder.NewDocument(),
	)

	// ingest use-case
	ingestUseCase := ingest.New(
		objectRepo,
		metadataRepo,
		transcodeUseCase,
		l,
		cfg.Pipeline.MaxObjectSize,
		cfg.Pipeline.OriginalPrefix,
		cfg.Pipeline.ProcessedPrefix,
	)

	// Kafka Consumer
	kafkaConsumer, err := consumer.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - consumer.New: %w", err))
	}

	// Events Controller
	eventsController := events.New(
		ingestUseCase,
		infrakafka.NewEventConsumer(kafkaConsumer),
		l,
		cfg.Dispatch.CommitTimeout,
		cfg.Dispatch.ProcessTimeout,
		runtime.NumCPU(),
	)

	// Reclaimer Worker
	reclaimerWorker := reclaimer.New(fileUseCase, l, cfg.Reclaimer.Interval)

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port), httpserver.Prefork(cfg.HTTP.UsePreforkMode))
	restapi.NewRouter(httpServer.App, cfg, fileUseCase, l)

	// Start Components
	err = reclaimerWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - reclaimerWorker.Start: %w", err))
	}
	err = eventsController.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - eventsController.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	rcShutdownCtx, rcShutdownCancel := context.WithTimeout(ctx, cfg.Reclaimer.ShutdownTimeout)
	defer rcShutdownCancel()
	err = reclaimerWorker.Shutdown(rcShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - reclaimerWorker.Shutdown: %w", err))
	}

	ecShutdownCtx, ecShutdownCancel := context.WithTimeout(ctx, cfg.Dispatch.ShutdownTimeout)
	defer ecShutdownCancel()
	err = eventsController.Shutdown(ecShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - eventsController.Shutdown: %w", err))
	}

	err = eventProducer.Close()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - eventProducer.Close: %w", err))
	}
}
