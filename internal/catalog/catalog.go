// Package catalog owns the set of registered source texts and their
// segmented sentences, and computes the daily sentence slices handed to the
// dispatcher.
package catalog

import (
	"fmt"
	"os"
	"sync"

	"github.com/yshymko/peredai/internal/model"
	"github.com/yshymko/peredai/internal/segmenter"
)

// DefaultSentencesPerDay is used when registration does not specify a rate.
const DefaultSentencesPerDay = 3

type Catalog struct {
	seg *segmenter.Segmenter

	mu    sync.RWMutex
	texts map[string]*model.TextSource
	order []string
}

func New(seg *segmenter.Segmenter) *Catalog {
	return &Catalog{
		seg:   seg,
		texts: make(map[string]*model.TextSource),
	}
}

// Register reads the document at path, segments it, and stores the result.
// The sentence sequence is fixed here: every index stored anywhere else in
// the system refers to this segmentation.
func (c *Catalog) Register(id, title, author, sourceLang, targetLang, path string, sentencesPerDay int) (*model.TextSource, error) {
	if sentencesPerDay <= 0 {
		sentencesPerDay = DefaultSentencesPerDay
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.texts[id]; exists {
		return nil, fmt.Errorf("%w: text %q", model.ErrDuplicateID, id)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrSourceNotFound, path, err)
	}

	sentencesSeq, err := c.seg.Segment(sourceLang, string(raw))
	if err != nil {
		return nil, fmt.Errorf("segmenting %q: %w", id, err)
	}

	text := &model.TextSource{
		ID:              id,
		Title:           title,
		Author:          author,
		FilePath:        path,
		SourceLang:      sourceLang,
		TargetLang:      targetLang,
		SentencesPerDay: sentencesPerDay,
		Sentences:       sentencesSeq,
	}
	c.texts[id] = text
	c.order = append(c.order, id)
	return text, nil
}

// Restore adds an already-segmented text, used when loading a persisted
// corpus. Re-segmentation never happens here; stored indices stay valid.
func (c *Catalog) Restore(text *model.TextSource) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.texts[text.ID]; exists {
		return fmt.Errorf("%w: text %q", model.ErrDuplicateID, text.ID)
	}
	c.texts[text.ID] = text
	c.order = append(c.order, text.ID)
	return nil
}

func (c *Catalog) Get(id string) (*model.TextSource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	text, ok := c.texts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrNotFound, id)
	}
	return text, nil
}

// FindByTitle returns the first registered text with an exactly matching
// title.
func (c *Catalog) FindByTitle(title string) (*model.TextSource, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		if c.texts[id].Title == title {
			return c.texts[id], true
		}
	}
	return nil, false
}

// Texts returns all registered texts in registration order.
func (c *Catalog) Texts() []*model.TextSource {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*model.TextSource, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.texts[id])
	}
	return result
}

// DailyPortion returns the slice [start, start+sentencesPerDay) of the
// text's sentences, clamped to the sentence count. A start at or past the
// end yields an empty portion, not an error.
func (c *Catalog) DailyPortion(id string, start int) ([]string, error) {
	text, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	if start < 0 || start >= len(text.Sentences) {
		return nil, nil
	}
	end := start + text.SentencesPerDay
	if end > len(text.Sentences) {
		end = len(text.Sentences)
	}
	return text.Sentences[start:end], nil
}
