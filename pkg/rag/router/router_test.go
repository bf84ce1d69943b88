package router

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"living-resume-be/internal/repository/memory"
	"living-resume-be/pkg/embedding"
	"living-resume-be/pkg/llm"
	"living-resume-be/pkg/profile"
	"living-resume-be/pkg/rag/response"
	"living-resume-be/pkg/rag/search"
	"living-resume-be/pkg/rag/session"
	"living-resume-be/pkg/store"
)

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0, 0}},
	}, nil
}

func (f *fakeEmbedder) GenerateBatch(texts []string, taskType string) ([]*embedding.EmbeddingResponse, error) {
	out := make([]*embedding.EmbeddingResponse, 0, len(texts))
	for range texts {
		res, err := f.Generate("", taskType)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// fakeLLM records every prompt it receives and replies with a fixed string
// or error.
type fakeLLM struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testData() *profile.Data {
	return profile.NewData(
		"Varun is a software engineer who builds full-stack products.",
		[]profile.Project{
			{Title: "VitalCare Platform", Description: "healthcare platform"},
			{Title: "QuickCart", Description: "e-commerce app"},
		},
		[]profile.ExperienceEntry{
			{Position: "Software Engineer", Company: "Acme Digital Labs", Period: "Jul 2023 – Present"},
		},
		[]profile.EducationEntry{
			{Degree: "B.Tech in Computer Science", School: "ABES Engineering College", Period: "2019 – 2023"},
		},
	)
}

func testCorpus() []store.CorpusEntry {
	return []store.CorpusEntry{
		{Text: "VitalCare Platform: healthcare platform", Tag: "Project – VitalCare Platform", Embedding: []float32{1, 0, 0}},
		{Text: "QuickCart: e-commerce app", Tag: "Project – QuickCart", Embedding: []float32{0, 1, 0}},
	}
}

type fixture struct {
	router   *Router
	sessions *session.Manager
	llm      *fakeLLM
}

func newFixture(llmProvider *fakeLLM, embedder *fakeEmbedder) *fixture {
	logger := log.New(io.Discard, "", 0)
	sessions := session.NewManager(memory.NewSessionRepository())
	retriever := search.NewRetriever(embedder, testCorpus(), logger)
	direct := response.NewDirectAnswerer(testData())
	return &fixture{
		router:   NewRouter(sessions, retriever, direct, llmProvider, 3, logger),
		sessions: sessions,
		llm:      llmProvider,
	}
}

func TestHandleEmptyMessage(t *testing.T) {
	f := newFixture(&fakeLLM{reply: "hi"}, &fakeEmbedder{})

	_, err := f.router.Handle(context.Background(), "alpha", "   ")

	require.ErrorIs(t, err, ErrEmptyMessage)
	_, found := f.sessions.Snapshot("alpha")
	assert.False(t, found, "empty message must not create a session")
	assert.Empty(t, f.llm.prompts)
}

func TestHandleDirectIntents(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"bio", "Who is Varun?", "Varun is a software engineer who builds full-stack products."},
		{"projects", "show me your projects", "My key projects are: VitalCare Platform, QuickCart."},
		{"experience", "what is your work history?", "Here's my experience: Software Engineer at Acme Digital Labs (Jul 2023 – Present)."},
		{"education", "tell me about your degree", "Here's my education: B.Tech in Computer Science from ABES Engineering College (2019 – 2023)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(&fakeLLM{reply: "should not be called"}, &fakeEmbedder{})

			res, err := f.router.Handle(context.Background(), "alpha", tt.message)

			require.NoError(t, err)
			assert.Equal(t, BranchDirect, res.Branch)
			assert.Equal(t, tt.want, res.Reply)
			assert.Empty(t, f.llm.prompts, "direct answers must not call the LLM")

			sess, found := f.sessions.Snapshot("alpha")
			require.True(t, found)
			assert.Empty(t, sess.History, "direct answers must not touch history")
		})
	}
}

func TestHandleToneCommand(t *testing.T) {
	f := newFixture(&fakeLLM{reply: "ok"}, &fakeEmbedder{})

	res, err := f.router.Handle(context.Background(), "alpha", "set tone to formal")

	require.NoError(t, err)
	assert.Equal(t, BranchCommand, res.Branch)
	assert.Equal(t, response.ToneConfirmation("formal"), res.Reply)

	sess, _ := f.sessions.Snapshot("alpha")
	assert.Equal(t, "formal", sess.Tone)
	assert.Empty(t, sess.History, "commands must not touch history")
}

func TestHandleLanguageCommand(t *testing.T) {
	f := newFixture(&fakeLLM{reply: "ok"}, &fakeEmbedder{})

	res, err := f.router.Handle(context.Background(), "alpha", "speak in french")

	require.NoError(t, err)
	assert.Equal(t, BranchCommand, res.Branch)
	assert.Equal(t, response.LanguageConfirmation("French"), res.Reply)

	sess, _ := f.sessions.Snapshot("alpha")
	assert.Equal(t, "French", sess.Language)
}

func TestCommandValueContainingIntentKeyword(t *testing.T) {
	f := newFixture(&fakeLLM{reply: "ok"}, &fakeEmbedder{})

	res, err := f.router.Handle(context.Background(), "alpha", "set tone to projects-mode")

	require.NoError(t, err)
	assert.Equal(t, BranchDirect, res.Branch, "intent keywords win over command prefixes")
	assert.Equal(t, "My key projects are: VitalCare Platform, QuickCart.", res.Reply)

	sess, _ := f.sessions.Snapshot("alpha")
	assert.Equal(t, store.DefaultTone, sess.Tone, "tone must stay untouched")
}

func TestHandleFallbackSuccess(t *testing.T) {
	f := newFixture(&fakeLLM{reply: "Go is great for services."}, &fakeEmbedder{})

	res, err := f.router.Handle(context.Background(), "alpha", "what do you think about Go?")

	require.NoError(t, err)
	assert.Equal(t, BranchFallback, res.Branch)
	assert.Equal(t, "Go is great for services.", res.Reply)

	require.Len(t, f.llm.prompts, 1)
	prompt := f.llm.prompts[0]
	assert.Contains(t, prompt, "Speak in a neutral tone, in English.")
	assert.Contains(t, prompt, "[Project – VitalCare Platform]")
	assert.True(t, strings.HasSuffix(prompt, "Assistant:"))

	sess, _ := f.sessions.Snapshot("alpha")
	require.Len(t, sess.History, 2)
	assert.Equal(t, store.SenderUser, sess.History[0].Sender)
	assert.Equal(t, "what do you think about Go?", sess.History[0].Text)
	assert.Equal(t, store.SenderAssistant, sess.History[1].Sender)
	assert.Equal(t, "Go is great for services.", sess.History[1].Text)
}

func TestHandleFallbackUsesSessionToneAndLanguage(t *testing.T) {
	f := newFixture(&fakeLLM{reply: "bien sûr"}, &fakeEmbedder{})
	ctx := context.Background()

	_, err := f.router.Handle(ctx, "alpha", "set tone to witty")
	require.NoError(t, err)
	_, err = f.router.Handle(ctx, "alpha", "speak in french")
	require.NoError(t, err)

	_, err = f.router.Handle(ctx, "alpha", "what else can you do?")
	require.NoError(t, err)

	require.Len(t, f.llm.prompts, 1)
	assert.Contains(t, f.llm.prompts[0], "Speak in a witty tone, in French.")
}

func TestHandleFallbackLLMFailure(t *testing.T) {
	f := newFixture(&fakeLLM{err: errors.New("connection refused")}, &fakeEmbedder{})

	res, err := f.router.Handle(context.Background(), "alpha", "what do you think about Go?")

	require.NoError(t, err, "LLM failure must not surface as a handler error")
	assert.Equal(t, BranchFallback, res.Branch)
	assert.Equal(t, response.MsgApology, res.Reply)

	sess, _ := f.sessions.Snapshot("alpha")
	require.Len(t, sess.History, 2, "substituted replies are recorded too")
	assert.Equal(t, response.MsgApology, sess.History[1].Text)
}

func TestHandleFallbackEmptyCompletion(t *testing.T) {
	f := newFixture(&fakeLLM{reply: "   \n"}, &fakeEmbedder{})

	res, err := f.router.Handle(context.Background(), "alpha", "hmm?")

	require.NoError(t, err)
	assert.Equal(t, response.MsgClarify, res.Reply)
}

func TestHandleFallbackRetrievalDegraded(t *testing.T) {
	f := newFixture(&fakeLLM{reply: "answered anyway"}, &fakeEmbedder{err: errors.New("embedding service down")})

	res, err := f.router.Handle(context.Background(), "alpha", "what do you think about Go?")

	require.NoError(t, err, "embedding failure must not take the exchange down")
	assert.Equal(t, "answered anyway", res.Reply)

	require.Len(t, f.llm.prompts, 1)
	assert.Contains(t, f.llm.prompts[0], "Context:\n", "context header stays even without hits")
	assert.NotContains(t, f.llm.prompts[0], "[Project –")
}

func TestHandleDefaultsSessionID(t *testing.T) {
	f := newFixture(&fakeLLM{reply: "hello"}, &fakeEmbedder{})

	_, err := f.router.Handle(context.Background(), "", "what do you think about Go?")
	require.NoError(t, err)

	sess, found := f.sessions.Snapshot("default")
	require.True(t, found)
	assert.Len(t, sess.History, 2)
}

func TestHandlePromptHistoryWindow(t *testing.T) {
	f := newFixture(&fakeLLM{reply: "ok"}, &fakeEmbedder{})
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := f.router.Handle(ctx, "alpha", "free chat "+strings.Repeat("x", i+1))
		require.NoError(t, err)
	}

	last := f.llm.prompts[len(f.llm.prompts)-1]
	// 5 prior exchanges = 10 stored turns; only the trailing 6 may appear
	assert.NotContains(t, last, "User: free chat x\n")
	assert.NotContains(t, last, "User: free chat xx\n")
	assert.Contains(t, last, "User: free chat xxx\n")
	assert.Contains(t, last, "User: free chat xxxxx\n")
}
