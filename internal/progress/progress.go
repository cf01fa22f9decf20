// Package progress owns the user directory and every per-(user, text)
// translation-progress record. It is the single source of truth for
// collected translations; the cross-user merge is computed on demand as a
// pure projection rather than kept as a second mutable copy.
package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/yshymko/peredai/internal/model"
)

// Store keeps users in registration order and progress records in
// assignment order. All mutations take the store lock, so each record
// update is atomic; records are never shared across users.
type Store struct {
	mu      sync.RWMutex
	users   map[string]*model.User
	order   []string
	records map[string][]*model.TranslationProgress
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]*model.User),
		records: make(map[string][]*model.TranslationProgress),
	}
}

// RegisterUser validates and stores a new user. Registration order is
// preserved: it pins the iteration order of MergedFor.
func (s *Store) RegisterUser(user *model.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return fmt.Errorf("%w: user %q", model.ErrDuplicateID, user.ID)
	}
	s.users[user.ID] = user
	s.order = append(s.order, user.ID)
	s.records[user.ID] = nil
	return nil
}

func (s *Store) GetUser(id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownUser, id)
	}
	return user, nil
}

// Users returns all users in registration order.
func (s *Store) Users() []*model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.User, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.users[id])
	}
	return result
}

// FindUserByContact resolves a user by exact match of an email address or
// phone number.
func (s *Store) FindUserByContact(contact string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		u := s.users[id]
		if (u.Email != "" && u.Email == contact) || (u.Phone != "" && u.Phone == contact) {
			return u, true
		}
	}
	return nil, false
}

// Assign creates the progress record for a (user, text) pair. At most one
// record may exist per pair; re-assigning fails rather than resetting.
func (s *Store) Assign(userID, textID string, totalSentences int) (*model.TranslationProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownUser, userID)
	}
	for _, rec := range s.records[userID] {
		if rec.TextID == textID {
			return nil, fmt.Errorf("%w: user %q, text %q", model.ErrAlreadyAssigned, userID, textID)
		}
	}

	rec := &model.TranslationProgress{
		UserID:         userID,
		TextID:         textID,
		TotalSentences: totalSentences,
		Translations:   make(map[int]string),
	}
	s.records[userID] = append(s.records[userID], rec)
	return rec, nil
}

// Restore adds a persisted progress record, preserving its cursor and
// translations.
func (s *Store) Restore(rec *model.TranslationProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[rec.UserID]; !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownUser, rec.UserID)
	}
	for _, existing := range s.records[rec.UserID] {
		if existing.TextID == rec.TextID {
			return fmt.Errorf("%w: user %q, text %q", model.ErrAlreadyAssigned, rec.UserID, rec.TextID)
		}
	}
	if rec.Translations == nil {
		rec.Translations = make(map[int]string)
	}
	s.records[rec.UserID] = append(s.records[rec.UserID], rec)
	return nil
}

// Advance moves the delivery cursor forward and records the send time.
// The cursor is monotonically non-decreasing; a smaller position is
// rejected.
func (s *Store) Advance(userID, textID string, newPosition int, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.findLocked(userID, textID)
	if err != nil {
		return err
	}
	if newPosition < rec.CurrentPosition {
		return fmt.Errorf("%w: %d < %d", model.ErrCursorRegression, newPosition, rec.CurrentPosition)
	}
	rec.CurrentPosition = newPosition
	rec.LastSentAt = sentAt
	return nil
}

// RecordTranslation upserts one translated sentence. Negative indices are
// rejected; indices beyond the sentence count are accepted and ignored by
// assembly.
func (s *Store) RecordTranslation(userID, textID string, sentenceIndex int, text string) error {
	if sentenceIndex < 0 {
		return fmt.Errorf("%w: %d", model.ErrInvalidSentenceIndex, sentenceIndex)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.findLocked(userID, textID)
	if err != nil {
		return err
	}
	rec.Translations[sentenceIndex] = text
	return nil
}

// Get returns the progress record for a (user, text) pair.
func (s *Store) Get(userID, textID string) (*model.TranslationProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(userID, textID)
}

// RecordsFor returns the user's progress records in assignment order.
func (s *Store) RecordsFor(userID string) []*model.TranslationProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[userID]
	result := make([]*model.TranslationProgress, len(recs))
	copy(result, recs)
	return result
}

// MergedFor unions all users' translations for a text into one map keyed by
// absolute sentence index. Users are iterated in registration order, so on
// an index collision the last-registered user's translation wins. That
// tie-break is deliberate and relied on by callers; changing the iteration
// order changes merge results.
func (s *Store) MergedFor(textID string) map[int]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	merged := make(map[int]string)
	for _, userID := range s.order {
		for _, rec := range s.records[userID] {
			if rec.TextID != textID {
				continue
			}
			for idx, text := range rec.Translations {
				merged[idx] = text
			}
		}
	}
	return merged
}

func (s *Store) findLocked(userID, textID string) (*model.TranslationProgress, error) {
	if _, ok := s.users[userID]; !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownUser, userID)
	}
	for _, rec := range s.records[userID] {
		if rec.TextID == textID {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%w: user %q, text %q", model.ErrNotAssigned, userID, textID)
}
