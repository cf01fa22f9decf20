package segmenter_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yshymko/peredai/internal/model"
	"github.com/yshymko/peredai/internal/segmenter"
)

func TestSegment_BasicSentences(t *testing.T) {
	s := segmenter.New()

	result, err := s.Segment("en", "First sentence here. Second sentence follows! Third one?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(result), result)
	}
	if result[0] != "First sentence here." {
		t.Errorf("unexpected first sentence: %q", result[0])
	}
}

func TestSegment_AbbreviationAware(t *testing.T) {
	s := segmenter.New()

	result, err := s.Segment("en", "Dr. Smith arrived at 9 a.m. sharp. He left an hour later.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "Dr." must not open a new sentence.
	if len(result) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(result), result)
	}
	if !strings.HasPrefix(result[0], "Dr. Smith") {
		t.Errorf("abbreviation split the first sentence: %q", result[0])
	}
}

func TestSegment_NormalizesWhitespace(t *testing.T) {
	s := segmenter.New()

	result, err := s.Segment("en", "One\tsentence   with\n\nmessy spacing. Another one.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(result), result)
	}
	if strings.Contains(result[0], "\n") || strings.Contains(result[0], "  ") {
		t.Errorf("whitespace not normalized: %q", result[0])
	}
}

func TestSegment_NoEmptySentences(t *testing.T) {
	s := segmenter.New()

	result, err := s.Segment("en", "  Hello.   World.  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, sent := range result {
		if strings.TrimSpace(sent) == "" {
			t.Errorf("sentence %d is empty", i)
		}
		if sent != strings.TrimSpace(sent) {
			t.Errorf("sentence %d not trimmed: %q", i, sent)
		}
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	s := segmenter.New()

	result, err := s.Segment("en", "   \n\t  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected no sentences, got %v", result)
	}
}

func TestSegment_Deterministic(t *testing.T) {
	s := segmenter.New()
	text := "The fox jumps. The dog sleeps. The cat watches."

	first, err := s.Segment("en", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Segment("en", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("sentence %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestSegment_ReconstructsNormalizedSource(t *testing.T) {
	s := segmenter.New()
	raw := "One two three. Four five!  Six seven?"
	normalized := segmenter.Normalize(raw)

	result, err := s.Segment("en", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejoined := strings.Join(result, " "); rejoined != normalized {
		t.Errorf("concatenation does not reconstruct source:\n got %q\nwant %q", rejoined, normalized)
	}
}

func TestSegment_UnsupportedLanguage(t *testing.T) {
	s := segmenter.New()

	_, err := s.Segment("xx", "Hello there. How are you?")
	if !errors.Is(err, model.ErrResourceUnavailable) {
		t.Errorf("expected ErrResourceUnavailable, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	got := segmenter.Normalize("  a\tb\n\nc  ")
	if got != "a b c" {
		t.Errorf("expected %q, got %q", "a b c", got)
	}
}
