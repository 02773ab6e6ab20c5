package main

import (
	"context"

	"github.com/gorilla/handlers"
	"github.com/openrelay/service-filerelay/config"
	"github.com/openrelay/service-filerelay/service/business"
	"github.com/openrelay/service-filerelay/service/events"
	"github.com/openrelay/service-filerelay/service/handler"
	"github.com/openrelay/service-filerelay/service/handler/routing"
	"github.com/openrelay/service-filerelay/service/platform"
	"github.com/openrelay/service-filerelay/service/queue"
	"github.com/openrelay/service-filerelay/service/storage/provider"
	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/util"
)

func main() {

	serviceName := "service_filerelay"
	ctx := context.Background()

	cfg, err := frame.ConfigFromEnv[config.FileRelayConfig]()
	if err != nil {
		util.Log(ctx).With("err", err).Error("could not process configs")
		return
	}

	ctx, svc := frame.NewService(serviceName, frame.WithConfig(&cfg))

	log := svc.Log(ctx)

	serviceOptions := []frame.Option{frame.WithDatastore()}

	if handleDatabaseMigration(ctx, svc, cfg, log) {
		return
	}

	storageProvider, err := provider.GetStorageProvider(ctx, &cfg)
	if err != nil {
		log.WithError(err).Fatal("main -- could not setup or access storage")
	}

	bot, err := platform.NewTelegramBot(cfg.BotToken)
	if err != nil {
		log.WithError(err).Fatal("main -- could not connect to the messaging platform")
	}

	fileRegistry := repository.NewFileRepository(svc)
	userStore := repository.NewUserRepository(svc)

	admission := business.NewAdmission(cfg.AdminIDs)
	identity := business.NewIdentity(userStore)
	verifier := business.NewVerifier(bot, cfg.RequiredChannels(), cfg.PlatformRequestTimeout())
	retriever := business.NewRetriever(svc, fileRegistry, verifier, identity)
	uploader := business.NewUploader(svc, &cfg, admission, fileRegistry, bot, storageProvider)
	broadcaster := business.NewBroadcaster(svc, admission, cfg.QueueBroadcastName)
	stats := business.NewStats(admission, userStore, fileRegistry)

	dispatcher := handler.NewDispatcher(svc, &cfg, bot, identity, uploader, retriever, broadcaster, stats)

	router := routing.NewRouterV1(svc, fileRegistry, storageProvider)
	fileServiceHandlers := handlers.RecoveryHandler(
		handlers.PrintRecoveryStack(true))(router)

	serviceOptions = append(serviceOptions, frame.WithHTTPHandler(fileServiceHandlers))

	serviceOptions = append(serviceOptions, frame.WithRegisterEvents(
		events.NewAccessAuditSaveHandler(svc),
	))

	broadcastQueueHandler := queue.NewBroadcastQueueHandler(svc, userStore, bot)
	serviceOptions = append(serviceOptions,
		frame.WithRegisterSubscriber(cfg.QueueBroadcastName, cfg.QueueBroadcastURL, &broadcastQueueHandler),
		frame.WithRegisterPublisher(cfg.QueueBroadcastName, cfg.QueueBroadcastURL),
	)

	thumbnailQueueHandler := queue.NewThumbnailQueueHandler(svc, fileRegistry, storageProvider)
	serviceOptions = append(serviceOptions,
		frame.WithRegisterSubscriber(cfg.QueueThumbnailsGenerateName, cfg.QueueThumbnailsGenerateURL, &thumbnailQueueHandler),
		frame.WithRegisterPublisher(cfg.QueueThumbnailsGenerateName, cfg.QueueThumbnailsGenerateURL),
	)

	svc.Init(ctx, serviceOptions...)

	go func() {
		pollErr := bot.Run(ctx, dispatcher.HandleEvent)
		if pollErr != nil {
			log.WithError(pollErr).Error("main -- update polling stopped")
		}
	}()

	log.WithField("server http port", cfg.HTTPPort()).
		Info(" Initiating server operations")

	err = svc.Run(ctx, "")
	if err != nil {
		log.WithError(err).Fatal("main -- could not run server : %v", err)
	}

}

// handleDatabaseMigration performs database migration if configured to do so.
func handleDatabaseMigration(
	ctx context.Context,
	svc *frame.Service,
	cfg config.FileRelayConfig,
	log *util.LogEntry,
) bool {
	serviceOptions := []frame.Option{frame.WithDatastore()}

	if cfg.DoDatabaseMigrate() {
		svc.Init(ctx, serviceOptions...)

		err := repository.Migrate(ctx, svc, cfg.GetDatabaseMigrationPath())
		if err != nil {
			log.WithError(err).Fatal("main -- could not migrate successfully")
		}
		return true
	}
	return false
}
