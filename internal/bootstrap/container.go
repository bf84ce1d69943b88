package bootstrap

import (
	"log"

	"living-resume-be/internal/config"
	"living-resume-be/internal/controller"
	"living-resume-be/internal/pkg/logger"
	"living-resume-be/internal/repository/memory"
	"living-resume-be/internal/service"
	"living-resume-be/pkg/embedding"
	"living-resume-be/pkg/llm/factory"
	"living-resume-be/pkg/profile"
	"living-resume-be/pkg/rag/index"
	"living-resume-be/pkg/rag/response"
	"living-resume-be/pkg/rag/router"
	ragsearch "living-resume-be/pkg/rag/search"
	ragsession "living-resume-be/pkg/rag/session"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// System logger, exposed so main can Sync on shutdown
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := service.NewLLMLogger()

	// 2. Corpus source. Missing or malformed data is fatal: the service has
	// nothing to talk about without it.
	data, err := profile.Load(cfg.App.DataDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load corpus source: %v", err)
	}
	sysLogger.Info("bootstrap", "Corpus source loaded", map[string]interface{}{
		"projects":   len(data.Projects()),
		"experience": len(data.Experience()),
		"education":  len(data.Education()),
	})

	// 3. Providers
	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.LLMTimeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Corpus index. Embedding failure here is fatal too; starting without
	// vectors would silently break every fallback query.
	corpus, err := index.NewIndexer(embeddingProvider, llmLogger).Build(data)
	if err != nil {
		log.Fatalf("[FATAL] Failed to index corpus: %v", err)
	}

	// 5. Session state
	sessionRepo := memory.NewSessionRepository()
	sessionManager := ragsession.NewManager(sessionRepo)

	// 6. Dialogue pipeline
	retriever := ragsearch.NewRetriever(embeddingProvider, corpus, llmLogger)
	directAnswerer := response.NewDirectAnswerer(data)
	dialogueRouter := router.NewRouter(
		sessionManager,
		retriever,
		directAnswerer,
		llmProvider,
		cfg.Ai.TopK,
		llmLogger,
	)

	// 7. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	usageRecorder := service.NewUsageRecorder()
	publisherService := service.NewPublisherService(cfg.App.ExchangeTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ExchangeTopic, usageRecorder)

	// 8. Services & Controllers
	chatService := service.NewChatService(
		dialogueRouter,
		sessionManager,
		publisherService,
		usageRecorder,
		llmLogger,
	)

	return &Container{
		ChatController:  controller.NewChatController(chatService),
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
