package bootstrap

import (
	"log"
	"os"

	"ai-usecase-explorer-be/internal/config"
	"ai-usecase-explorer-be/internal/controller"
	"ai-usecase-explorer-be/internal/pkg/logger"
	"ai-usecase-explorer-be/internal/repository/memory"
	"ai-usecase-explorer-be/internal/repository/prefs"
	"ai-usecase-explorer-be/internal/service"
	"ai-usecase-explorer-be/internal/websocket"
	"ai-usecase-explorer-be/pkg/datagen"
	"ai-usecase-explorer-be/pkg/explorer"
	"ai-usecase-explorer-be/pkg/llm/openaichat"
	"ai-usecase-explorer-be/pkg/llm/token"
	"ai-usecase-explorer-be/pkg/valuechain"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ExplorerController controller.IExplorerController
	DataGenController  controller.IDataGenController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := log.New(os.Stdout, "[LLM] ", log.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisher := service.NewEventPublisher(pubSub)

	// 3. Completion backend
	var tokens token.Source
	if cfg.LLM.TokenURL != "" {
		tokens = token.NewClient(cfg.LLM.TokenURL, cfg.LLM.TokenCredential)
	} else {
		tokens = token.Static(cfg.LLM.APIKey)
	}
	provider := openaichat.NewProvider(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.ClientTag, tokens)

	// 4. Value-chain catalog (soft-fail to custom-only mode)
	catalog, err := valuechain.LoadCatalog(cfg.App.CatalogPath)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Catalog unavailable, custom-only mode", map[string]interface{}{"path": cfg.App.CatalogPath, "error": err.Error()})
	}
	generator := valuechain.NewGenerator(provider)
	resolver := valuechain.NewResolver(catalog, generator)

	// 5. Session state
	sessionRepo := memory.NewSessionRepository()
	state := explorer.NewState(sessionRepo)
	manager := explorer.NewManager(state, provider, publisher, llmLogger)

	// 6. Generator-input persistence (best effort)
	var rdb *redis.Client
	if opts, err := redis.ParseURL(cfg.App.RedisURL); err == nil {
		rdb = redis.NewClient(opts)
	} else {
		sysLogger.Warn("Bootstrap", "Redis unavailable, generator inputs will not persist", map[string]interface{}{"error": err.Error()})
	}
	prefsStore := prefs.NewStore(rdb)

	pipeline := datagen.NewPipeline(provider, tokens)

	// 7. Services
	explorerService := service.NewExplorerService(catalog, resolver, state, manager, publisher, sysLogger)
	dataGenService := service.NewDataGenService(pipeline, prefsStore, sysLogger)

	// 8. WebSocket hub
	wsLogger := logger.NewIsolatedLogger("ws.log")
	hub := websocket.NewHub(wsLogger)

	return &Container{
		ExplorerController: controller.NewExplorerController(explorerService),
		DataGenController:  controller.NewDataGenController(dataGenService),
		ConsumerService:    service.NewConsumerService(pubSub, hub),
		WebSocketHub:       hub,
	}
}
