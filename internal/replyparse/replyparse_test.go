package replyparse_test

import (
	"testing"

	"github.com/yshymko/peredai/internal/replyparse"
)

func TestParse_BracketPattern(t *testing.T) {
	got := replyparse.Parse("[1] Hola\n[2] Mundo")
	if len(got) != 2 {
		t.Fatalf("expected 2 translations, got %d: %v", len(got), got)
	}
	if got[0] != "Hola" || got[1] != "Mundo" {
		t.Errorf("unexpected result: %v", got)
	}
}

func TestParse_NumberedFallback(t *testing.T) {
	got := replyparse.Parse("1. Hola\n2. Mundo")
	if len(got) != 2 {
		t.Fatalf("expected 2 translations, got %d: %v", len(got), got)
	}
	if got[0] != "Hola" || got[1] != "Mundo" {
		t.Errorf("unexpected result: %v", got)
	}
}

func TestParse_NoMarkers(t *testing.T) {
	got := replyparse.Parse("no markers here")
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestParse_MultilineTranslation(t *testing.T) {
	body := "[1] First line\ncontinues on a second line\n[2] Short"
	got := replyparse.Parse(body)
	if len(got) != 2 {
		t.Fatalf("expected 2 translations, got %d", len(got))
	}
	if got[0] != "First line\ncontinues on a second line" {
		t.Errorf("multiline capture broken: %q", got[0])
	}
}

func TestParse_BracketsTakePrecedence(t *testing.T) {
	// When brackets match, the numbered-list pattern must not run at all.
	body := "[1] Uses 2. style punctuation inside"
	got := replyparse.Parse(body)
	if len(got) != 1 {
		t.Fatalf("expected 1 translation, got %d: %v", len(got), got)
	}
	if got[0] != "Uses 2. style punctuation inside" {
		t.Errorf("unexpected capture: %q", got[0])
	}
}

func TestParse_TrimsWhitespace(t *testing.T) {
	got := replyparse.Parse("[1]    padded text   \n\n[2]\nnext line")
	if got[0] != "padded text" {
		t.Errorf("expected trimmed text, got %q", got[0])
	}
	if got[1] != "next line" {
		t.Errorf("expected trimmed text, got %q", got[1])
	}
}

func TestParse_OversizedMarkerSkipped(t *testing.T) {
	// A marker too large for int cannot address a sentence; it is dropped
	// while surrounding markers still parse.
	body := "[1] keep\n[99999999999999999999999] drop\n[2] also keep"
	got := replyparse.Parse(body)
	if _, ok := got[0]; !ok {
		t.Error("expected marker [1] to survive")
	}
	if _, ok := got[1]; !ok {
		t.Error("expected marker [2] to survive")
	}
	if len(got) != 2 {
		t.Errorf("expected exactly 2 translations, got %v", got)
	}
}

func TestParse_OneBasedToZeroBased(t *testing.T) {
	got := replyparse.Parse("[3] tercero")
	if got[2] != "tercero" {
		t.Errorf("expected 1-based marker converted to 0-based index, got %v", got)
	}
}

func TestParse_DuplicateMarkerLastWins(t *testing.T) {
	got := replyparse.Parse("[1] first try\n[1] second try")
	if len(got) != 1 {
		t.Fatalf("expected 1 translation, got %d", len(got))
	}
	if got[0] != "second try" {
		t.Errorf("expected later duplicate to win, got %q", got[0])
	}
}
