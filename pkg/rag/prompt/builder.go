package prompt

import (
	"fmt"
	"strings"

	"living-resume-be/pkg/store"
)

// SystemTemplate is the avatar persona block. Tone and language are
// substituted per session.
const SystemTemplate = `You are Varun Tyagi's AI avatar.
You know Varun's resume, projects, and achievements.
Speak in a %s tone, in %s.`

// HistoryWindow is the fixed number of trailing turns included in a prompt.
const HistoryWindow = 6

// Builder assembles the single prompt string sent to the LLM.
type Builder struct {
	tone     string
	language string
	context  []store.ScoredEntry
	history  []store.Turn
	message  string
}

// NewBuilder creates a prompt builder for one fallback exchange.
func NewBuilder(tone, language string, context []store.ScoredEntry, history []store.Turn, message string) *Builder {
	return &Builder{
		tone:     tone,
		language: language,
		context:  context,
		history:  history,
		message:  message,
	}
}

// Build concatenates system block, context block, history block and the user
// cue, in that fixed order, each section separated by a newline. Inputs are
// never mutated.
func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writeSystem(&prompt)
	b.writeContext(&prompt)
	b.writeHistory(&prompt)
	b.writeUserCue(&prompt)

	return prompt.String()
}

func (b *Builder) writeSystem(prompt *strings.Builder) {
	prompt.WriteString(fmt.Sprintf(SystemTemplate, b.tone, b.language))
	prompt.WriteString("\n")
}

// writeContext emits one "[tag] text" line per retrieved entry in
// descending-similarity order. The header is written even when retrieval came
// back empty so the model sees the section is intentionally blank.
func (b *Builder) writeContext(prompt *strings.Builder) {
	prompt.WriteString("Context:\n")
	for _, scored := range b.context {
		prompt.WriteString(fmt.Sprintf("[%s] %s\n", scored.Entry.Tag, scored.Entry.Text))
	}
}

func (b *Builder) writeHistory(prompt *strings.Builder) {
	history := b.history
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	for _, turn := range history {
		prompt.WriteString(fmt.Sprintf("%s: %s\n", turn.Sender, turn.Text))
	}
}

func (b *Builder) writeUserCue(prompt *strings.Builder) {
	prompt.WriteString(fmt.Sprintf("User: %s\nAssistant:", b.message))
}
