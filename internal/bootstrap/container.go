package bootstrap

import (
	"context"
	"log"

	"meditranslate-be/internal/config"
	"meditranslate-be/internal/controller"
	"meditranslate-be/internal/pkg/logger"
	"meditranslate-be/internal/repository/memory"
	"meditranslate-be/internal/repository/unitofwork"
	"meditranslate-be/internal/service"
	"meditranslate-be/internal/websocket"
	pkgNats "meditranslate-be/pkg/nats"
	"meditranslate-be/pkg/storage"
	"meditranslate-be/pkg/translator"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	TranslationController  *controller.TranslationController
	ConversationController *controller.ConversationController
	SearchController       *controller.SearchController

	// Background Services (Exposed for main.go to run)
	BroadcastService service.IBroadcastService

	// WebSockets
	Hub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	if cfg.Keys.GoogleGemini == "" {
		log.Fatal("[FATAL] GOOGLE_GEMINI_API_KEY is required")
	}

	gateway := translator.NewGeminiGateway("", cfg.Keys.GoogleGemini, cfg.Ai.Model)
	blobStore := storage.NewLocalStore(cfg.App.UploadDir, cfg.App.BaseURL)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(pubSub)

	// 2.5 Infrastructure
	// NATS (audit bus, optional)
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis (cross-instance websocket fanout, optional)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket Hub
	hub := websocket.NewHub(rdb, sysLogger)
	go hub.Run()

	// In-Memory State
	timelineRepo := memory.NewTimelineRepository()
	deviceSessionRepo := memory.NewDeviceSessionRepository()

	// 3. Services
	messageService := service.NewMessageService(
		uowFactory,
		timelineRepo,
		gateway,
		blobStore,
		publisherService,
		natsPub,
		cfg.Topics.PipelineEvents,
		sysLogger,
	)
	sessionService := service.NewSessionService(uowFactory, deviceSessionRepo, sysLogger)
	summaryService := service.NewSummaryService(uowFactory, gateway, natsPub, sysLogger)
	searchService := service.NewSearchService(uowFactory)

	broadcastService := service.NewBroadcastService(
		pubSub,
		cfg.Topics.PipelineEvents,
		hub,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		TranslationController:  controller.NewTranslationController(gateway, messageService, summaryService, sysLogger),
		ConversationController: controller.NewConversationController(sessionService, messageService),
		SearchController:       controller.NewSearchController(searchService),

		BroadcastService: broadcastService,
		Hub:              hub,
		Logger:           sysLogger,
	}
}
