package bootstrap

import (
	"context"
	"log"
	"time"

	"angus-connect-be/internal/config"
	"angus-connect-be/internal/controller"
	"angus-connect-be/internal/handler"
	"angus-connect-be/internal/pkg/logger"
	"angus-connect-be/internal/pkg/mailer"
	"angus-connect-be/internal/repository/implementation"
	"angus-connect-be/internal/repository/memory"
	"angus-connect-be/internal/repository/unitofwork"
	"angus-connect-be/internal/service"
	"angus-connect-be/internal/websocket"
	"angus-connect-be/pkg/assistant"

	pktNats "angus-connect-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const noticiaPublishTopic = "noticia_publicada"

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	UserController      controller.IUserController
	CabanaController    controller.ICabanaController
	RemateController    controller.IRemateController
	NoticiaController   controller.INoticiaController
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

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

	// 3. Assistant plumbing
	assistantClient := assistant.NewClient(cfg.Assistant.WebhookURL,
		assistant.WithTimeout(time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second))
	conversationRepo := memory.NewConversationRepository()

	// 4. Services
	publisherService := service.NewPublisherService(noticiaPublishTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		noticiaPublishTopic,
		uowFactory,
		natsPub,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg.JWT)
	userService := service.NewUserService(uowFactory)
	cabanaService := service.NewCabanaService(uowFactory)
	remateService := service.NewRemateService(uowFactory, natsPub)
	noticiaService := service.NewNoticiaService(uowFactory, publisherService)
	assistantService := service.NewAssistantService(assistantClient, conversationRepo)

	// 5. Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, sysLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		UserController:      controller.NewUserController(userService),
		CabanaController:    controller.NewCabanaController(cabanaService),
		RemateController:    controller.NewRemateController(remateService),
		NoticiaController:   controller.NewNoticiaController(noticiaService),
		AssistantController: controller.NewAssistantController(assistantService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
