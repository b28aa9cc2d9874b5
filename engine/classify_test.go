package engine

import (
	"strings"
	"testing"
)

func sessionWith(lang string) *Session {
	return newSession("u", lang)
}

func TestClassifyContinuationNeedsContextForAffirmatives(t *testing.T) {
	loc := LocaleFor("es")
	ses := sessionWith("es")

	// Bare affirmative with no context is normal chat.
	if got := Classify("si", loc, ses); got != IntentNormal {
		t.Fatalf("expected normal, got %s", got)
	}

	ses.SetContext(ContextSummary, "texto largo")
	if got := Classify("si", loc, ses); got != IntentContinuation {
		t.Fatalf("expected continuation, got %s", got)
	}
}

func TestClassifyBareContinuationWithoutContext(t *testing.T) {
	loc := LocaleFor("es")
	ses := sessionWith("es")
	// An explicit continuation verb is continuation intent even with
	// nothing stored; the assembler answers with the no-context reply.
	if got := Classify("continua", loc, ses); got != IntentContinuation {
		t.Fatalf("expected continuation, got %s", got)
	}
}

func TestClassifyContinuationPrecedesLongText(t *testing.T) {
	loc := LocaleFor("es")
	ses := sessionWith("es")
	ses.SetContext(ContextScript, "default {}")

	long := "continua con esto " + strings.Repeat("palabra ", 100)
	if len(long) < longTextThreshold {
		t.Fatal("test text too short")
	}
	if got := Classify(long, loc, ses); got != IntentContinuation {
		t.Fatalf("expected continuation to win, got %s", got)
	}
}

func TestClassifyDomainContent(t *testing.T) {
	loc := LocaleFor("es")
	ses := sessionWith("es")
	if got := Classify(completeScript, loc, ses); got != IntentDomainContent {
		t.Fatalf("expected domain content, got %s", got)
	}

	// With analysis disabled the script predicate is skipped.
	ses.SetFlag(FlagAnalysis, false)
	if got := Classify(completeScript, loc, ses); got == IntentDomainContent {
		t.Fatal("analysis disabled but script still routed to domain content")
	}
}

func TestClassifyLongText(t *testing.T) {
	loc := LocaleFor("es")
	ses := sessionWith("es")
	long := strings.Repeat("palabras y mas palabras ", 40)
	if got := Classify(long, loc, ses); got != IntentLongText {
		t.Fatalf("expected long text, got %s", got)
	}
}

func TestClassifyDiagnostic(t *testing.T) {
	loc := LocaleFor("es")
	ses := sessionWith("es")
	if got := Classify("mi objeto va muy lento, hay mucho lag", loc, ses); got != IntentDiagnostic {
		t.Fatalf("expected diagnostic, got %s", got)
	}
}

func TestClassifyNormalDefault(t *testing.T) {
	loc := LocaleFor("es")
	ses := sessionWith("es")
	if got := Classify("hola zorro sabio, como estas", loc, ses); got != IntentNormal {
		t.Fatalf("expected normal, got %s", got)
	}
}

func TestTokenizeIgnoresEmbeddedWords(t *testing.T) {
	// "si" inside "siempre" must not read as an affirmative.
	loc := LocaleFor("es")
	ses := sessionWith("es")
	ses.SetContext(ContextSummary, "texto")
	if got := Classify("siempre hablas bonito", loc, ses); got != IntentNormal {
		t.Fatalf("expected normal, got %s", got)
	}
}
