// Package assemble merges all contributors' translations for a text into a
// single ordered output document and computes completion statistics.
// Untranslated sentences are never silently dropped: the plain encoding
// marks them inline and the structured encoding carries a placeholder.
package assemble

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yshymko/peredai/internal/model"
)

const (
	FormatText = "txt"
	FormatJSON = "json"

	placeholder = "[UNTRANSLATED]"
)

// SentenceRecord is one entry of the structured output.
type SentenceRecord struct {
	Index       int    `json:"index"`
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

// Document is the structured output encoding.
type Document struct {
	Title          string           `json:"title"`
	Author         string           `json:"author,omitempty"`
	SourceLanguage string           `json:"source_language"`
	TargetLanguage string           `json:"target_language"`
	Sentences      []SentenceRecord `json:"sentences"`
}

// Status summarizes how much of a text has been translated.
type Status struct {
	Title                string  `json:"title"`
	TotalSentences       int     `json:"total_sentences"`
	TranslatedCount      int     `json:"translated_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
	RemainingCount       int     `json:"remaining_count"`
}

// Assembler writes assembled documents under outputDir as
// {source base name}_{target language}.{txt|json}.
type Assembler struct {
	outputDir string
}

func New(outputDir string) *Assembler {
	return &Assembler{outputDir: outputDir}
}

// Assemble writes the merged translation document and returns its path.
// Translation indices outside [0, len(sentences)) are ignored.
func (a *Assembler) Assemble(text *model.TextSource, translations map[int]string, format string) (string, error) {
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(text.FilePath), filepath.Ext(text.FilePath))
	if base == "" || base == "." {
		base = text.ID
	}
	name := fmt.Sprintf("%s_%s", base, text.TargetLang)

	switch format {
	case FormatText:
		path := filepath.Join(a.outputDir, name+".txt")
		if err := os.WriteFile(path, []byte(RenderPlain(text, translations)), 0o644); err != nil {
			return "", fmt.Errorf("failed to write plain output: %w", err)
		}
		return path, nil
	case FormatJSON:
		path := filepath.Join(a.outputDir, name+".json")
		if err := writeJSON(path, BuildDocument(text, translations)); err != nil {
			return "", err
		}
		return path, nil
	default:
		return "", fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, format)
	}
}

// RenderPlain emits sentences in order, substituting translations where
// present and tagging gaps inline. A line break follows sentences whose
// original ends in sentence-final punctuation, otherwise a single space, so
// the output keeps the rough paragraph shape of the source.
func RenderPlain(text *model.TextSource, translations map[int]string) string {
	var b strings.Builder
	for i, original := range text.Sentences {
		if translated, ok := translations[i]; ok {
			b.WriteString(translated)
		} else {
			fmt.Fprintf(&b, "[UNTRANSLATED: %s]", original)
		}
		if endsSentence(original) {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// BuildDocument produces the structured encoding: every sentence with its
// index, original text, and translation or placeholder, plus document
// metadata.
func BuildDocument(text *model.TextSource, translations map[int]string) *Document {
	doc := &Document{
		Title:          text.Title,
		Author:         text.Author,
		SourceLanguage: text.SourceLang,
		TargetLanguage: text.TargetLang,
		Sentences:      make([]SentenceRecord, 0, len(text.Sentences)),
	}
	for i, original := range text.Sentences {
		translation := placeholder
		if t, ok := translations[i]; ok {
			translation = t
		}
		doc.Sentences = append(doc.Sentences, SentenceRecord{
			Index:       i,
			Original:    original,
			Translation: translation,
		})
	}
	return doc
}

// ComputeStatus reports completion accounting for a merged translation map.
// Only indices addressing real sentences count, so completion can never
// exceed 100%; an empty text reports 0%.
func ComputeStatus(text *model.TextSource, translations map[int]string) Status {
	total := len(text.Sentences)
	translated := 0
	for idx := range translations {
		if idx >= 0 && idx < total {
			translated++
		}
	}

	pct := 0.0
	if total > 0 {
		pct = float64(translated) / float64(total) * 100
	}

	return Status{
		Title:                text.Title,
		TotalSentences:       total,
		TranslatedCount:      translated,
		CompletionPercentage: pct,
		RemainingCount:       total - translated,
	}
}

func writeJSON(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create json output: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode json output: %w", err)
	}
	return nil
}

func endsSentence(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}
