package command

import (
	"strings"
	"unicode"
)

// Prefix constants - ORDER MATTERS for parsing (tone checked before language)
const (
	PrefixTone     = "set tone to "
	PrefixLanguage = "speak in "
)

// Kind identifies which session field a command mutates.
type Kind string

const (
	KindNone     Kind = ""
	KindTone     Kind = "tone"
	KindLanguage Kind = "language"
)

// ParsedCommand is a recognized tone/language command.
type ParsedCommand struct {
	Kind  Kind
	Value string // trimmed remainder after the prefix; capitalized for language
}

// Parse extracts a session command from the message.
// Supports:
//   - set tone to <value> → tone command, value trimmed as-is
//   - speak in <value>    → language command, value capitalized
//   - anything else       → no command (Kind == KindNone)
//
// Values are open vocabulary: whatever the user asks for is accepted and
// echoed back.
func Parse(message string) *ParsedCommand {
	lower := strings.ToLower(strings.TrimSpace(message))

	if strings.HasPrefix(lower, PrefixTone) {
		value := strings.TrimSpace(lower[len(PrefixTone):])
		if value != "" {
			return &ParsedCommand{Kind: KindTone, Value: value}
		}
	}

	if strings.HasPrefix(lower, PrefixLanguage) {
		value := strings.TrimSpace(lower[len(PrefixLanguage):])
		if value != "" {
			return &ParsedCommand{Kind: KindLanguage, Value: capitalize(value)}
		}
	}

	return &ParsedCommand{Kind: KindNone}
}

// IsCommand reports whether a command was recognized.
func (p *ParsedCommand) IsCommand() bool {
	return p.Kind != KindNone
}

// capitalize upper-cases the first rune and lower-cases the rest, so
// "french" and "FRENCH" both become "French".
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
