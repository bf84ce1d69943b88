package intent

import (
	"strings"
	"unicode"
)

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentBio        Intent = "bio"
	IntentProjects   Intent = "projects"
	IntentExperience Intent = "experience"
	IntentEducation  Intent = "education"
	IntentFallback   Intent = "fallback"
)

// intentRule pairs an intent with its keyword set. Rules are evaluated in
// slice order and the first match wins, so overlapping keywords resolve
// deterministically to the earlier rule.
type intentRule struct {
	intent   Intent
	keywords []string
}

// Priority: Bio > Projects > Experience > Education.
var rules = []intentRule{
	{IntentBio, []string{"who is varun", "tell me about varun", "introduce yourself"}},
	{IntentProjects, []string{"projects", "portfolio"}},
	{IntentExperience, []string{"experience", "work history", "background"}},
	{IntentEducation, []string{"education", "degree", "studies"}},
}

// Classify maps raw user text to an intent. It never fails; anything that
// matches no keyword is a fallback query for the RAG pipeline.
func Classify(text string) Intent {
	normalized := Normalize(text)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.intent
			}
		}
	}
	return IntentFallback
}

// Normalize lowercases the text, replaces punctuation with spaces and
// collapses whitespace runs, so "Who IS Varun?" and "who is varun" compare
// equal.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return r
	}, lowered)
	return strings.Join(strings.Fields(mapped), " ")
}
