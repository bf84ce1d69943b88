package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	"living-resume-be/internal/dto"
	"living-resume-be/pkg/events"
	"living-resume-be/pkg/rag/router"
	"living-resume-be/pkg/rag/session"

	"github.com/gofiber/fiber/v2"
)

// IChatService defines the chat service interface
type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetSessionState(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error)
	GetStats(ctx context.Context) (*dto.ChatStatsResponse, error)
}

// chatService glues the dialogue router to the transport layer and publishes
// exchange events for the usage recorder.
type chatService struct {
	router           *router.Router
	sessions         *session.Manager
	publisherService IPublisherService
	recorder         *UsageRecorder
	llmLogger        *log.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	dialogueRouter *router.Router,
	sessions *session.Manager,
	publisherService IPublisherService,
	recorder *UsageRecorder,
	llmLogger *log.Logger,
) IChatService {
	return &chatService{
		router:           dialogueRouter,
		sessions:         sessions,
		publisherService: publisherService,
		recorder:         recorder,
		llmLogger:        llmLogger,
	}
}

// NewLLMLogger opens the dedicated RAG trace log. Falls back to stdout when
// the logs directory cannot be created.
func NewLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (cs *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	result, err := cs.router.Handle(ctx, request.SessionId, request.Message)
	if err != nil {
		if errors.Is(err, router.ErrEmptyMessage) {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return nil, err
	}

	sessionID := request.SessionId
	if sessionID == "" {
		sessionID = "default"
	}

	// Only completed fallback exchanges count as usage.
	if result.Branch == router.BranchFallback {
		cs.publishExchange(ctx, sessionID, string(result.Intent))
	}

	return &dto.SendChatResponse{
		Reply:     result.Reply,
		Intent:    string(result.Intent),
		Branch:    string(result.Branch),
		SessionId: sessionID,
	}, nil
}

func (cs *chatService) publishExchange(ctx context.Context, sessionID, intentName string) {
	event := events.NewChatExchange(sessionID, intentName)
	payloadJson, _ := json.Marshal(event.Payload())
	if err := cs.publisherService.Publish(ctx, payloadJson); err != nil {
		cs.llmLogger.Printf("[WARN] Failed to publish %s event: %v", event.EventType(), err)
	}
}

func (cs *chatService) GetSessionState(_ context.Context, sessionID string) (*dto.SessionStateResponse, error) {
	snapshot, found := cs.sessions.Snapshot(sessionID)
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return &dto.SessionStateResponse{
		SessionId:     snapshot.ID,
		Tone:          snapshot.Tone,
		Language:      snapshot.Language,
		HistoryLength: len(snapshot.History),
	}, nil
}

func (cs *chatService) GetStats(_ context.Context) (*dto.ChatStatsResponse, error) {
	total, perSession := cs.recorder.Snapshot()
	return &dto.ChatStatsResponse{
		TotalExchanges: total,
		PerSession:     perSession,
	}, nil
}
