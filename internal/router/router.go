// Package router resolves inbound replies to a (user, text) pair, shifts
// the parser's relative sentence numbers into absolute indices, and stores
// the translations on the sender's progress record.
package router

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yshymko/peredai/internal/catalog"
	"github.com/yshymko/peredai/internal/messaging"
	"github.com/yshymko/peredai/internal/model"
	"github.com/yshymko/peredai/internal/progress"
	"github.com/yshymko/peredai/internal/replyparse"
)

// Result reports what a routed reply produced. Saved maps the absolute
// sentence indices that were written to their translations; an empty map
// with a nil error means the reply carried no recognizable translations.
type Result struct {
	UserID string
	TextID string
	Saved  map[int]string
}

type Router struct {
	catalog  *catalog.Catalog
	progress *progress.Store
	log      *zap.Logger
}

func New(cat *catalog.Catalog, store *progress.Store, log *zap.Logger) *Router {
	return &Router{catalog: cat, progress: store, log: log}
}

// Route processes one inbound reply. The sender is matched by exact email
// or phone string; the text comes from the subject convention when present,
// otherwise from the sender's first assignment.
//
// A reply is assumed to address the most recently sent batch: relative
// indices are offset by max(0, currentPosition - sentencesPerDay). Replies
// to older batches are mis-attributed under this scheme; that is a known
// limitation, not a routing error the engine can detect.
func (r *Router) Route(senderContact, subjectLine, body string) (*Result, error) {
	user, ok := r.progress.FindUserByContact(senderContact)
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownSender, senderContact)
	}

	text, err := r.resolveText(user, subjectLine)
	if err != nil {
		return nil, err
	}

	result := &Result{UserID: user.ID, TextID: text.ID, Saved: make(map[int]string)}

	parsed := replyparse.Parse(body)
	if len(parsed) == 0 {
		r.log.Info("no translations found in reply",
			zap.String("user_id", user.ID),
			zap.String("text_id", text.ID))
		return result, nil
	}

	rec, err := r.progress.Get(user.ID, text.ID)
	if err != nil {
		return nil, err
	}

	base := rec.CurrentPosition - text.SentencesPerDay
	if base < 0 {
		base = 0
	}

	for rel, translation := range parsed {
		abs := base + rel
		if abs < 0 {
			r.log.Warn("dropping translation with negative index",
				zap.String("user_id", user.ID),
				zap.String("text_id", text.ID),
				zap.Int("relative", rel))
			continue
		}
		if err := r.progress.RecordTranslation(user.ID, text.ID, abs, translation); err != nil {
			return nil, err
		}
		result.Saved[abs] = translation
	}

	r.log.Info("translations saved",
		zap.String("user_id", user.ID),
		zap.String("text_id", text.ID),
		zap.Int("count", len(result.Saved)))
	return result, nil
}

func (r *Router) resolveText(user *model.User, subjectLine string) (*model.TextSource, error) {
	if title, ok := messaging.TitleFromSubject(subjectLine); ok {
		if text, found := r.catalog.FindByTitle(title); found {
			return text, nil
		}
	}

	// No usable subject: fall back to the sender's first assignment.
	records := r.progress.RecordsFor(user.ID)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no texts assigned to user %q", model.ErrNotAssigned, user.ID)
	}
	return r.catalog.Get(records[0].TextID)
}
