package router

import (
	"context"
	"errors"
	"log"
	"strings"

	"living-resume-be/pkg/llm"
	"living-resume-be/pkg/rag/command"
	"living-resume-be/pkg/rag/intent"
	"living-resume-be/pkg/rag/prompt"
	"living-resume-be/pkg/rag/response"
	"living-resume-be/pkg/rag/search"
	"living-resume-be/pkg/rag/session"
)

// ErrEmptyMessage is returned for blank input. The caller maps it to a
// client error; no session is created and no state is touched.
var ErrEmptyMessage = errors.New("no message provided")

// Branch names the pipeline a message was resolved to.
type Branch string

const (
	BranchDirect   Branch = "direct"
	BranchCommand  Branch = "command"
	BranchFallback Branch = "fallback"
)

// Result is the outcome of routing one message.
type Result struct {
	Reply  string
	Branch Branch
	Intent intent.Intent
}

// Router decides how each message is answered. Branch priority is a fixed,
// ordered list evaluated top to bottom:
//
//  1. direct answers for the closed intents (bio/projects/experience/education)
//  2. tone/language commands, only once intent resolved to fallback
//  3. the RAG + LLM fallback pipeline
//
// A command whose value happens to contain an intent keyword, e.g.
// "set tone to projects-mode", therefore resolves to the intent branch.
type Router struct {
	sessions    *session.Manager
	retriever   *search.Retriever
	direct      *response.DirectAnswerer
	llmProvider llm.LLMProvider
	topK        int
	logger      *log.Logger

	branches []branch
}

// branch pairs a name with its handler. Handlers return false when the
// message is not theirs and evaluation moves to the next entry.
type branch struct {
	name   Branch
	handle func(ctx context.Context, sessionID, message string, it intent.Intent) (string, bool)
}

// NewRouter creates the dialogue router with its fixed branch priority.
func NewRouter(
	sessions *session.Manager,
	retriever *search.Retriever,
	direct *response.DirectAnswerer,
	llmProvider llm.LLMProvider,
	topK int,
	logger *log.Logger,
) *Router {
	r := &Router{
		sessions:    sessions,
		retriever:   retriever,
		direct:      direct,
		llmProvider: llmProvider,
		topK:        topK,
		logger:      logger,
	}
	r.branches = []branch{
		{BranchDirect, r.handleDirect},
		{BranchCommand, r.handleCommand},
		{BranchFallback, r.handleFallback},
	}
	return r
}

// Handle routes one message for one session and returns the reply.
func (r *Router) Handle(ctx context.Context, sessionID, message string) (*Result, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if sessionID == "" {
		sessionID = "default"
	}

	r.sessions.GetOrCreate(sessionID)
	it := intent.Classify(message)

	for _, b := range r.branches {
		if reply, ok := b.handle(ctx, sessionID, message, it); ok {
			r.logger.Printf("[ROUTER] session=%s branch=%s intent=%s", sessionID, b.name, it)
			return &Result{Reply: reply, Branch: b.name, Intent: it}, nil
		}
	}

	// The fallback handler always claims the message; this is unreachable.
	return nil, errors.New("no branch handled message")
}

// handleDirect answers the closed intents from structured data. Never touches
// history.
func (r *Router) handleDirect(_ context.Context, _ string, _ string, it intent.Intent) (string, bool) {
	switch it {
	case intent.IntentBio:
		return r.direct.Bio(), true
	case intent.IntentProjects:
		return r.direct.Projects(), true
	case intent.IntentExperience:
		return r.direct.Experience(), true
	case intent.IntentEducation:
		return r.direct.Education(), true
	default:
		return "", false
	}
}

// handleCommand mutates session tone or language and confirms. Never touches
// history.
func (r *Router) handleCommand(_ context.Context, sessionID, message string, _ intent.Intent) (string, bool) {
	cmd := command.Parse(message)
	switch cmd.Kind {
	case command.KindTone:
		r.sessions.SetTone(sessionID, cmd.Value)
		return response.ToneConfirmation(cmd.Value), true
	case command.KindLanguage:
		r.sessions.SetLanguage(sessionID, cmd.Value)
		return response.LanguageConfirmation(cmd.Value), true
	default:
		return "", false
	}
}

// handleFallback runs retrieval, prompt assembly and the LLM call. Whatever
// happens, the exchange is recorded as a User/Assistant pair so the session
// remembers substituted replies too.
func (r *Router) handleFallback(ctx context.Context, sessionID, message string, _ intent.Intent) (string, bool) {
	retrieved, err := r.retriever.Retrieve(message, r.topK)
	if err != nil {
		// A dead embedding service should not take the whole exchange down;
		// the LLM can still answer without retrieved context.
		r.logger.Printf("[ROUTER] Retrieval degraded for session %s: %v", sessionID, err)
		retrieved = nil
	}

	sess, _ := r.sessions.Snapshot(sessionID)
	composed := prompt.NewBuilder(sess.Tone, sess.Language, retrieved, sess.History, message).Build()

	reply := r.generate(ctx, sessionID, composed)
	r.sessions.AppendExchange(sessionID, message, reply)
	return reply, true
}

// generate performs the single LLM attempt and converts every failure mode
// into a user-visible reply. Raw errors never reach the caller.
func (r *Router) generate(ctx context.Context, sessionID, composed string) string {
	out, err := r.llmProvider.Generate(ctx, composed)
	if err != nil {
		r.logger.Printf("[ROUTER] LLM call failed for session %s: %v", sessionID, err)
		return response.MsgApology
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return response.MsgClarify
	}
	return out
}
