// Package model holds the domain types shared by every component of the
// translation workflow: source texts, translators, and per-assignment
// progress records.
package model

import (
	"fmt"
	"time"
)

// DeliveryMethod selects the channel used to send daily portions to a user.
type DeliveryMethod string

const (
	DeliveryEmail DeliveryMethod = "email"
	DeliverySMS   DeliveryMethod = "sms"
)

// Valid reports whether m is one of the known delivery methods.
func (m DeliveryMethod) Valid() bool {
	return m == DeliveryEmail || m == DeliverySMS
}

// TextSource is a registered source document. Sentences are populated once
// at registration time and never mutated afterwards; a sentence's position
// in the slice is its identity everywhere else in the system.
type TextSource struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author,omitempty"`
	FilePath        string   `json:"file_path"`
	SourceLang      string   `json:"source_lang"`
	TargetLang      string   `json:"target_lang"`
	SentencesPerDay int      `json:"sentences_per_day"`
	Sentences       []string `json:"sentences"`
}

// TotalDays returns how many daily portions the text spans,
// rounding the final partial portion up.
func (t *TextSource) TotalDays() int {
	if t.SentencesPerDay <= 0 {
		return 0
	}
	return (len(t.Sentences) + t.SentencesPerDay - 1) / t.SentencesPerDay
}

// User is a human translator. Contact fields are immutable after creation.
type User struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	PreferredMethod DeliveryMethod `json:"preferred_method"`
}

// Validate checks that the user carries the contact field its preferred
// delivery method requires.
func (u *User) Validate() error {
	switch u.PreferredMethod {
	case DeliveryEmail:
		if u.Email == "" {
			return fmt.Errorf("%w: email address required for email delivery", ErrInvalidUserContact)
		}
	case DeliverySMS:
		if u.Phone == "" {
			return fmt.Errorf("%w: phone number required for sms delivery", ErrInvalidUserContact)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDeliveryMethod, u.PreferredMethod)
	}
	return nil
}

// TranslationProgress tracks one user's work on one text: the cursor past
// the last delivered sentence and the translations collected so far, keyed
// by absolute sentence index.
type TranslationProgress struct {
	UserID          string         `json:"user_id"`
	TextID          string         `json:"text_id"`
	TotalSentences  int            `json:"total_sentences"`
	CurrentPosition int            `json:"current_position"`
	LastSentAt      time.Time      `json:"last_sent_at,omitzero"`
	Translations    map[int]string `json:"translations"`
}
