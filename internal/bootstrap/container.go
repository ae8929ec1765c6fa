package bootstrap

import (
	"context"
	"log"

	"ai-estimator-be/internal/config"
	"ai-estimator-be/internal/constant"
	"ai-estimator-be/internal/controller"
	"ai-estimator-be/internal/handler"
	"ai-estimator-be/internal/pkg/logger"
	"ai-estimator-be/internal/repository/memory"
	"ai-estimator-be/internal/repository/unitofwork"
	"ai-estimator-be/internal/service"
	"ai-estimator-be/internal/websocket"
	"ai-estimator-be/pkg/embedding"
	"ai-estimator-be/pkg/formatpattern"
	llmOpenrouter "ai-estimator-be/pkg/llm/openrouter"
	pktNats "ai-estimator-be/pkg/nats"
	"ai-estimator-be/pkg/pricing"
	"ai-estimator-be/pkg/skills"
	"ai-estimator-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OrganizationController controller.IOrganizationController
	ProfileController      controller.IProfileController
	DocumentController     controller.IDocumentController
	ChatController         controller.IChatController
	PricingController      controller.IPricingController
	SkillController        controller.ISkillController

	// Background Services (Exposed for main.go to run)
	ProcessorService   service.IProcessorService
	EnrichmentService  service.IEnrichmentService
	NotificationWorker *service.NotificationService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. AI Providers
	embeddingProvider := embedding.NewOpenRouterProvider(
		cfg.OpenRouter.APIKey,
		cfg.OpenRouter.BaseURL,
		cfg.Ai.EmbeddingModel,
		cfg.OpenRouter.Referer,
		cfg.OpenRouter.Title,
	)
	chatProvider := llmOpenrouter.NewProvider(
		cfg.OpenRouter.APIKey,
		cfg.OpenRouter.BaseURL,
		cfg.Ai.ChatModel,
		cfg.OpenRouter.Referer,
		cfg.OpenRouter.Title,
	)
	extractionProvider := llmOpenrouter.NewProvider(
		cfg.OpenRouter.APIKey,
		cfg.OpenRouter.BaseURL,
		cfg.Ai.ExtractionModel,
		cfg.OpenRouter.Referer,
		cfg.OpenRouter.Title,
	)
	log.Printf("[INFO] Using OpenRouter models: chat=%s extraction=%s embedding=%s",
		cfg.Ai.ChatModel, cfg.Ai.ExtractionModel, cfg.Ai.EmbeddingModel)

	// Object storage and in-memory format cache
	objectStore := storage.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, cfg.Supabase.StorageBucket)
	formatCache := memory.NewFormatAggregateCache()

	// Document mining stages
	formatExtractor := formatpattern.NewExtractor(extractionProvider)
	pricingExtractor := pricing.NewExtractor(extractionProvider)

	// Skills
	skillRegistry := skills.NewRegistry(
		skills.NewSpanishJobOrder(chatProvider),
		skills.NewMaterialsTakeoff(chatProvider),
	)

	// 4. Services
	processPublisher := service.NewPublisherService(constant.DocumentProcessTopic, pubSub)
	enrichPublisher := service.NewPublisherService(constant.EnrichConversationTopic, pubSub)

	organizationService := service.NewOrganizationService(uowFactory)
	profileService := service.NewProfileService(uowFactory, organizationService)
	documentService := service.NewDocumentService(
		uowFactory,
		organizationService,
		processPublisher,
		objectStore,
		formatCache,
	)
	pricingService := service.NewPricingService(uowFactory, organizationService, embeddingProvider, sysLogger)
	chatService := service.NewChatService(
		uowFactory,
		organizationService,
		enrichPublisher,
		embeddingProvider,
		chatProvider,
		formatCache,
		cfg.Ai.ChatModel,
		sysLogger,
	)
	skillService := service.NewSkillService(uowFactory, organizationService, skillRegistry)

	processorService := service.NewProcessorService(
		pubSub,
		constant.DocumentProcessTopic,
		uowFactory,
		objectStore,
		embeddingProvider,
		formatExtractor,
		pricingExtractor,
		formatCache,
		natsPub,
		sysLogger,
	)
	enrichmentService := service.NewEnrichmentService(
		pubSub,
		constant.EnrichConversationTopic,
		uowFactory,
		extractionProvider,
		sysLogger,
	)

	// 4.5 Notification System
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)
	notifHandler := handler.NewNotificationHandler(wsHub, cfg.Supabase.JWTSecret, wsLogger)

	// 5. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:         controller.NewAuthController(organizationService),
		OrganizationController: controller.NewOrganizationController(organizationService),
		ProfileController:      controller.NewProfileController(profileService),
		DocumentController:     controller.NewDocumentController(documentService),
		ChatController:         controller.NewChatController(chatService),
		PricingController:      controller.NewPricingController(pricingService),
		SkillController:        controller.NewSkillController(skillService),

		ProcessorService:   processorService,
		EnrichmentService:  enrichmentService,
		NotificationWorker: notifService,
	}
}
