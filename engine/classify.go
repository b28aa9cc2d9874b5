package engine

import "strings"

type Intent int

const (
	IntentNormal Intent = iota
	IntentContinuation
	IntentDomainContent
	IntentLongText
	IntentDiagnostic
)

func (i Intent) String() string {
	switch i {
	case IntentContinuation:
		return "continuation"
	case IntentDomainContent:
		return "domain_content"
	case IntentLongText:
		return "long_text"
	case IntentDiagnostic:
		return "diagnostic"
	default:
		return "normal"
	}
}

const longTextThreshold = 600

// Problem-indicator vocabulary, shared across languages.
var diagnosticWords = []string{
	"lag", "lento", "lenta", "slow", "rendimiento", "performance",
	"crash", "falla", "cuelga", "freeze", "travado", "congela",
}

// Classify routes free text that matched no command. The order is a
// deliberate precedence: continuation beats script detection beats
// length beats diagnostics.
func Classify(text string, loc *Locale, ses *Session) Intent {
	hasContext := ses.Continuation() != nil
	if containsWord(text, loc.ContinuationWords) {
		// A bare continuation verb with nothing to resume still
		// signals continuation intent; the assembler answers it
		// with the explicit no-context reply.
		if hasContext || isBareContinuation(text, loc) {
			return IntentContinuation
		}
	}
	// Short affirmatives only count when something is resumable.
	if hasContext && containsWord(text, loc.AffirmationWords) {
		return IntentContinuation
	}

	if ses.Flag(FlagAnalysis) && LooksLikeScript(text) {
		return IntentDomainContent
	}

	if len(text) >= longTextThreshold {
		return IntentLongText
	}

	if containsWord(text, diagnosticWords) {
		return IntentDiagnostic
	}

	return IntentNormal
}

// isBareContinuation is true when the whole message is continuation
// vocabulary ("continua", "sigue"). Longer sentences that merely
// contain the word, with nothing to resume, fall through to Normal.
func isBareContinuation(text string, loc *Locale) bool {
	words := tokenize(text)
	if len(words) == 0 || len(words) > 2 {
		return false
	}
	for _, w := range words {
		if !inWordList(w, loc.ContinuationWords) && !inWordList(w, loc.AffirmationWords) {
			return false
		}
	}
	// At least one strong continuation word required.
	for _, w := range words {
		if inWordList(w, loc.ContinuationWords) {
			return true
		}
	}
	return false
}

func containsWord(text string, vocabulary []string) bool {
	for _, w := range tokenize(text) {
		if inWordList(w, vocabulary) {
			return true
		}
	}
	return false
}

func inWordList(word string, list []string) bool {
	for _, w := range list {
		if word == w {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}
