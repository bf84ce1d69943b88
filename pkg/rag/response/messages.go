package response

// Fixed user-facing replies for the recovery paths. The fallback branch must
// always hand something well-formed back, so these never vary.
const (
	MsgEmptyMessage = "No message provided"
	MsgClarify      = "I'm not sure I understood that. Could you rephrase?"
	MsgApology      = "Oops! Something went wrong."
)

// ToneConfirmation acknowledges a tone change.
func ToneConfirmation(tone string) string {
	return "Okay, I'll respond in a " + tone + " tone from now on."
}

// LanguageConfirmation acknowledges a language change.
func LanguageConfirmation(language string) string {
	return "Sure, I'll reply in " + language + "."
}
