package engine

import (
	"strings"
	"testing"
)

func TestNormalizeStripsAccents(t *testing.T) {
	got := Normalize("¿Qué pasó, señor Muñoz?")
	want := "Que paso, senor Munoz?"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeAppliesFallbackTable(t *testing.T) {
	cases := map[string]string{
		"Ærøskøbing": "AEroskobing",
		"straße":     "strasse",
		"cœur":       "coeur",
		"Łódź":       "Lodz",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeStripsPunctuationAndDegree(t *testing.T) {
	got := Normalize("¡Hola! Hace 28°C, “dicen” que ‘mucho’")
	if strings.ContainsAny(got, "¡¿°“”‘’") {
		t.Fatalf("forbidden runes survived: %q", got)
	}
	if !strings.Contains(got, "28C") {
		t.Fatalf("degree sign not collapsed: %q", got)
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	got := Normalize("a\r\nb\rc\nd")
	if got != "a\nb\nc\nd" {
		t.Fatalf("unexpected line endings: %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"¿Dónde está la biblioteca?",
		"default { state_entry() { llSay(0, \"hola\"); } }",
		"  \r\n mixed \r endings ñandú æ ",
		"",
		"plain ascii stays put",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeMalformedInput(t *testing.T) {
	if got := Normalize(string([]byte{0xff, 0xfe, 0xfd})); got != "" {
		t.Fatalf("expected empty string for invalid utf-8, got %q", got)
	}
	if got := Normalize(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
