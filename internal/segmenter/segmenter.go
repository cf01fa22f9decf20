// Package segmenter splits raw document text into an ordered, immutable
// sequence of sentences. Whitespace runs are collapsed to single spaces and
// the text is NFC-normalized before an abbreviation-aware punkt tokenizer
// produces the sentence boundaries, so the same input always yields the
// same sequence and the same indices.
package segmenter

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/data"
	"golang.org/x/text/unicode/norm"

	"github.com/yshymko/peredai/internal/model"
)

// trainingByLang maps ISO 639-1 codes to the bundled punkt training data.
var trainingByLang = map[string]string{
	"cs": "czech",
	"da": "danish",
	"nl": "dutch",
	"en": "english",
	"et": "estonian",
	"fi": "finnish",
	"fr": "french",
	"de": "german",
	"el": "greek",
	"it": "italian",
	"no": "norwegian",
	"pl": "polish",
	"pt": "portuguese",
	"sl": "slovene",
	"es": "spanish",
	"sv": "swedish",
	"tr": "turkish",
}

var whitespace = regexp.MustCompile(`\s+`)

// Segmenter tokenizes text into sentences. Tokenizers are built once per
// language and reused across calls.
type Segmenter struct {
	mu         sync.Mutex
	tokenizers map[string]*sentences.DefaultSentenceTokenizer
}

func New() *Segmenter {
	return &Segmenter{
		tokenizers: make(map[string]*sentences.DefaultSentenceTokenizer),
	}
}

// Segment splits raw into trimmed, non-empty sentences in document order.
// lang is an ISO 639-1 code; languages without bundled training data fail
// with model.ErrResourceUnavailable.
func (s *Segmenter) Segment(lang, raw string) ([]string, error) {
	text := Normalize(raw)
	if text == "" {
		return nil, nil
	}

	tok, err := s.tokenizer(lang)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, sent := range tok.Tokenize(text) {
		trimmed := strings.TrimSpace(sent.Text)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result, nil
}

func (s *Segmenter) tokenizer(lang string) (*sentences.DefaultSentenceTokenizer, error) {
	key := strings.ToLower(lang)

	s.mu.Lock()
	defer s.mu.Unlock()

	if tok, ok := s.tokenizers[key]; ok {
		return tok, nil
	}

	name, ok := trainingByLang[key]
	if !ok {
		return nil, fmt.Errorf("%w: no training data for language %q", model.ErrResourceUnavailable, lang)
	}

	asset, err := data.Asset("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}

	training, err := sentences.LoadTraining(asset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}

	tok := sentences.NewSentenceTokenizer(training)
	s.tokenizers[key] = tok
	return tok, nil
}

// Normalize collapses all whitespace runs to single spaces, trims the ends,
// and applies Unicode NFC normalization.
func Normalize(raw string) string {
	return norm.NFC.String(strings.TrimSpace(whitespace.ReplaceAllString(raw, " ")))
}
