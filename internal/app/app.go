// Package app wires the workflow engine together for the CLI: it loads the
// persisted corpus, user directory, and progress records into the
// in-memory components at startup, exposes the high-level operations the
// commands call, and writes state changes back to the store.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yshymko/peredai/internal/assemble"
	"github.com/yshymko/peredai/internal/catalog"
	"github.com/yshymko/peredai/internal/config"
	"github.com/yshymko/peredai/internal/dispatch"
	"github.com/yshymko/peredai/internal/messaging"
	"github.com/yshymko/peredai/internal/model"
	"github.com/yshymko/peredai/internal/progress"
	"github.com/yshymko/peredai/internal/router"
	"github.com/yshymko/peredai/internal/segmenter"
	"github.com/yshymko/peredai/internal/store"
)

type App struct {
	cfg *config.Config
	log *zap.Logger

	store      *store.Store
	catalog    *catalog.Catalog
	progress   *progress.Store
	dispatcher *dispatch.Dispatcher
	router     *router.Router
	assembler  *assemble.Assembler
}

// New opens the store, loads all persisted state, and wires the engine
// with the real email and SMS channels.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	transport := messaging.NewTransport(
		messaging.NewEmailChannel(cfg.Email, log),
		messaging.NewSMSChannel(cfg.SMS, log),
	)
	return newApp(cfg, log, transport)
}

func newApp(cfg *config.Config, log *zap.Logger, transport dispatch.Transport) (*App, error) {
	db, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		log:       log,
		store:     db,
		catalog:   catalog.New(segmenter.New()),
		progress:  progress.NewStore(),
		assembler: assemble.New(cfg.OutputDir),
	}
	a.dispatcher = dispatch.New(a.catalog, a.progress, transport, log)
	a.router = router.New(a.catalog, a.progress, log)

	if err := a.load(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) load(ctx context.Context) error {
	texts, err := a.store.LoadTexts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load texts: %w", err)
	}
	for _, t := range texts {
		if err := a.catalog.Restore(t); err != nil {
			return err
		}
	}

	users, err := a.store.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	for _, u := range users {
		if err := a.progress.RegisterUser(u); err != nil {
			return err
		}
	}

	records, err := a.store.LoadProgress(ctx)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}
	for _, rec := range records {
		if err := a.progress.Restore(rec); err != nil {
			return err
		}
	}
	return nil
}

// RegisterTextParams carries a register-text request. ID and
// SentencesPerDay are optional: a blank ID gets generated from the title,
// a zero rate falls back to the configured default.
type RegisterTextParams struct {
	ID              string
	Title           string
	Author          string
	SourceLang      string
	TargetLang      string
	FilePath        string
	SentencesPerDay int
}

func (a *App) RegisterText(ctx context.Context, p RegisterTextParams) (*model.TextSource, error) {
	if p.ID == "" {
		p.ID = generateID(p.Title)
	}
	if p.SentencesPerDay <= 0 {
		p.SentencesPerDay = a.cfg.SentencesPerDay
	}

	text, err := a.catalog.Register(p.ID, p.Title, p.Author, p.SourceLang, p.TargetLang, p.FilePath, p.SentencesPerDay)
	if err != nil {
		return nil, err
	}
	if err := a.store.SaveText(ctx, text); err != nil {
		return nil, err
	}

	a.log.Info("text registered",
		zap.String("text_id", text.ID),
		zap.String("title", text.Title),
		zap.Int("sentences", len(text.Sentences)),
		zap.Int("total_days", text.TotalDays()))
	return text, nil
}

// RegisterUserParams carries a register-user request. When Method is blank
// it is inferred from which contact field is present, defaulting to email.
type RegisterUserParams struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Method model.DeliveryMethod
}

func (a *App) RegisterUser(ctx context.Context, p RegisterUserParams) (*model.User, error) {
	if p.ID == "" {
		p.ID = generateID(p.Name)
	}
	if p.Method == "" {
		if p.Phone != "" && p.Email == "" {
			p.Method = model.DeliverySMS
		} else {
			p.Method = model.DeliveryEmail
		}
	}

	user := &model.User{
		ID:              p.ID,
		Name:            p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		PreferredMethod: p.Method,
	}
	if err := a.progress.RegisterUser(user); err != nil {
		return nil, err
	}
	if err := a.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	a.log.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("method", string(user.PreferredMethod)))
	return user, nil
}

// Assign gives a text to a user for translation and returns the new
// progress record alongside the text.
func (a *App) Assign(ctx context.Context, userID, textID string) (*model.TranslationProgress, *model.TextSource, error) {
	text, err := a.catalog.Get(textID)
	if err != nil {
		return nil, nil, err
	}

	rec, err := a.progress.Assign(userID, textID, len(text.Sentences))
	if err != nil {
		return nil, nil, err
	}
	if err := a.store.SaveProgress(ctx, rec); err != nil {
		return nil, nil, err
	}

	a.log.Info("text assigned",
		zap.String("user_id", userID),
		zap.String("text_id", textID),
		zap.Int("total_sentences", len(text.Sentences)),
		zap.Int("total_days", text.TotalDays()))
	return rec, text, nil
}

// RunDailyCycle dispatches the next portion to the targeted users (all
// users when userIDs is empty) and persists every advanced cursor.
func (a *App) RunDailyCycle(ctx context.Context, userIDs []string) (*dispatch.Report, error) {
	report := a.dispatcher.RunDailyCycle(ctx, userIDs)

	for _, res := range report.Results {
		if res.Err != nil || res.Sent == 0 {
			continue
		}
		rec, err := a.progress.Get(res.UserID, res.TextID)
		if err != nil {
			return report, err
		}
		if err := a.store.SaveProgress(ctx, rec); err != nil {
			return report, err
		}
	}
	return report, nil
}

// ProcessReply routes one inbound reply and persists the saved
// translations.
func (a *App) ProcessReply(ctx context.Context, sender, subject, body string) (*router.Result, error) {
	result, err := a.router.Route(sender, subject, body)
	if err != nil {
		return nil, err
	}

	for idx, translation := range result.Saved {
		if err := a.store.SaveTranslation(ctx, result.UserID, result.TextID, idx, translation); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Export assembles the merged translation document for a text and returns
// the output path with the completion status.
func (a *App) Export(ctx context.Context, textID, format string) (string, assemble.Status, error) {
	text, err := a.catalog.Get(textID)
	if err != nil {
		return "", assemble.Status{}, err
	}

	merged := a.progress.MergedFor(textID)
	path, err := a.assembler.Assemble(text, merged, format)
	if err != nil {
		return "", assemble.Status{}, err
	}
	return path, assemble.ComputeStatus(text, merged), nil
}

// Status reports completion accounting for a text without writing output.
func (a *App) Status(textID string) (assemble.Status, error) {
	text, err := a.catalog.Get(textID)
	if err != nil {
		return assemble.Status{}, err
	}
	return assemble.ComputeStatus(text, a.progress.MergedFor(textID)), nil
}

// Schedule returns the configured cron expression for the daily cycle.
func (a *App) Schedule() string {
	return a.cfg.Schedule
}

func (a *App) Close() error {
	return a.store.Close()
}

// generateID derives a readable id from a name plus a short random suffix
// to keep ids unique without requiring callers to invent them.
func generateID(name string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	if base == "" {
		base = "item"
	}
	return fmt.Sprintf("%s_%s", base, uuid.NewString()[:8])
}

// ResolveSourcePath interprets a register-text file path relative to the
// configured data directory unless it is absolute.
func (a *App) ResolveSourcePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.cfg.DataDir, path)
}
