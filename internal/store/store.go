// Package store persists the corpus, the user directory, and all progress
// records between CLI invocations. The workflow engine itself never touches
// SQL; commands load the state into the in-memory components at startup and
// write changes back through this package.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/yshymko/peredai/internal/model"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS texts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT,
		file_path TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		sentences_per_day INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- The segmentation is stored verbatim: sentence identity is the
	-- (text_id, idx) pair and must survive process restarts unchanged.
	CREATE TABLE IF NOT EXISTS sentences (
		text_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		content TEXT NOT NULL,
		PRIMARY KEY (text_id, idx),
		FOREIGN KEY (text_id) REFERENCES texts(id)
	);

	-- seq pins user registration order, which in turn pins the merge
	-- tie-break (last-registered user wins).
	CREATE TABLE IF NOT EXISTS users (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		preferred_method TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS progress (
		rowid_order INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		text_id TEXT NOT NULL,
		total_sentences INTEGER NOT NULL,
		current_position INTEGER NOT NULL DEFAULT 0,
		last_sent_at TIMESTAMP,
		UNIQUE (user_id, text_id),
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (text_id) REFERENCES texts(id)
	);

	CREATE TABLE IF NOT EXISTS translations (
		user_id TEXT NOT NULL,
		text_id TEXT NOT NULL,
		sentence_idx INTEGER NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, text_id, sentence_idx)
	);

	CREATE INDEX IF NOT EXISTS idx_sentences_text ON sentences(text_id);
	CREATE INDEX IF NOT EXISTS idx_translations_text ON translations(text_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveText stores a registered text and its full sentence sequence.
func (s *Store) SaveText(ctx context.Context, text *model.TextSource) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO texts (id, title, author, file_path, source_lang, target_lang, sentences_per_day) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		text.ID, text.Title, text.Author, text.FilePath, text.SourceLang, text.TargetLang, text.SentencesPerDay)
	if err != nil {
		return fmt.Errorf("failed to save text %q: %w", text.ID, err)
	}

	for i, sentence := range text.Sentences {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sentences (text_id, idx, content) VALUES (?, ?, ?)`,
			text.ID, i, normalizeText(sentence))
		if err != nil {
			return fmt.Errorf("failed to save sentence %d of %q: %w", i, text.ID, err)
		}
	}

	return tx.Commit()
}

// SaveUser stores a registered user.
func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, phone, preferred_method) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Phone, string(user.PreferredMethod))
	if err != nil {
		return fmt.Errorf("failed to save user %q: %w", user.ID, err)
	}
	return nil
}

// SaveProgress upserts the cursor state of a progress record. Translations
// are saved separately, one row per sentence.
func (s *Store) SaveProgress(ctx context.Context, rec *model.TranslationProgress) error {
	var lastSent any
	if !rec.LastSentAt.IsZero() {
		lastSent = rec.LastSentAt
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO progress (user_id, text_id, total_sentences, current_position, last_sent_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, text_id) DO UPDATE SET
			current_position = excluded.current_position,
			last_sent_at = excluded.last_sent_at`,
		rec.UserID, rec.TextID, rec.TotalSentences, rec.CurrentPosition, lastSent)
	if err != nil {
		return fmt.Errorf("failed to save progress for user %q, text %q: %w", rec.UserID, rec.TextID, err)
	}
	return nil
}

// SaveTranslation upserts one translated sentence.
func (s *Store) SaveTranslation(ctx context.Context, userID, textID string, sentenceIdx int, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translations (user_id, text_id, sentence_idx, content) VALUES (?, ?, ?, ?)`,
		userID, textID, sentenceIdx, content)
	if err != nil {
		return fmt.Errorf("failed to save translation: %w", err)
	}
	return nil
}

// LoadTexts returns every stored text with its sentences in index order.
func (s *Store) LoadTexts(ctx context.Context) ([]*model.TextSource, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author, file_path, source_lang, target_lang, sentences_per_day FROM texts ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var texts []*model.TextSource
	for rows.Next() {
		var t model.TextSource
		var author sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &author, &t.FilePath, &t.SourceLang, &t.TargetLang, &t.SentencesPerDay); err != nil {
			return nil, err
		}
		t.Author = author.String
		texts = append(texts, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range texts {
		if t.Sentences, err = s.loadSentences(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return texts, nil
}

func (s *Store) loadSentences(ctx context.Context, textID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT content FROM sentences WHERE text_id = ? ORDER BY idx`, textID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		result = append(result, content)
	}
	return result, rows.Err()
}

// LoadUsers returns every stored user in registration order.
func (s *Store) LoadUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, phone, preferred_method FROM users ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var u model.User
		var email, phone sql.NullString
		var method string
		if err := rows.Scan(&u.ID, &u.Name, &email, &phone, &method); err != nil {
			return nil, err
		}
		u.Email = email.String
		u.Phone = phone.String
		u.PreferredMethod = model.DeliveryMethod(method)
		users = append(users, &u)
	}
	return users, rows.Err()
}

// LoadProgress returns every progress record with its translations,
// in assignment order.
func (s *Store) LoadProgress(ctx context.Context) ([]*model.TranslationProgress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, text_id, total_sentences, current_position, last_sent_at FROM progress ORDER BY rowid_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.TranslationProgress
	for rows.Next() {
		rec := &model.TranslationProgress{Translations: make(map[int]string)}
		var lastSent sql.NullTime
		if err := rows.Scan(&rec.UserID, &rec.TextID, &rec.TotalSentences, &rec.CurrentPosition, &lastSent); err != nil {
			return nil, err
		}
		if lastSent.Valid {
			rec.LastSentAt = lastSent.Time
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rec := range records {
		if err := s.loadTranslations(ctx, rec); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (s *Store) loadTranslations(ctx context.Context, rec *model.TranslationProgress) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sentence_idx, content FROM translations WHERE user_id = ? AND text_id = ?`,
		rec.UserID, rec.TextID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var idx int
		var content string
		if err := rows.Scan(&idx, &content); err != nil {
			return err
		}
		rec.Translations[idx] = content
	}
	return rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization so
// stored sentence text compares consistently.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
