package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/yshymko/peredai/internal/config"
	"github.com/yshymko/peredai/internal/messaging"
	"github.com/yshymko/peredai/internal/model"
)

type recordedSend struct {
	userID    string
	textTitle string
	sentences []string
	indices   []int
}

type fakeTransport struct {
	sends []recordedSend
	fail  bool
}

func (f *fakeTransport) Send(_ context.Context, user *model.User, textTitle string, sentences []string, indices []int) (bool, error) {
	if f.fail {
		return false, nil
	}
	f.sends = append(f.sends, recordedSend{
		userID:    user.ID,
		textTitle: textTitle,
		sentences: sentences,
		indices:   indices,
	})
	return true, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DataDir:         dir,
		OutputDir:       filepath.Join(dir, "out"),
		DBPath:          filepath.Join(dir, "peredai.db"),
		SentencesPerDay: 3,
	}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing source text: %v", err)
	}
	return path
}

func newTestApp(t *testing.T, cfg *config.Config, transport *fakeTransport) *App {
	t.Helper()
	a, err := newApp(cfg, zap.NewNop(), transport)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestApp_FullWorkflow(t *testing.T) {
	cfg := testConfig(t)
	src := writeSource(t, cfg.DataDir, "story.txt", "One. Two. Three. Four. Five.")
	transport := &fakeTransport{}
	a := newTestApp(t, cfg, transport)
	ctx := context.Background()

	text, err := a.RegisterText(ctx, RegisterTextParams{
		ID:              "story",
		Title:           "Story",
		Author:          "Anon",
		SourceLang:      "en",
		TargetLang:      "uk",
		FilePath:        src,
		SentencesPerDay: 2,
	})
	if err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	if len(text.Sentences) != 5 {
		t.Fatalf("got %d sentences, want 5", len(text.Sentences))
	}
	if text.TotalDays() != 3 {
		t.Errorf("TotalDays = %d, want 3", text.TotalDays())
	}

	user, err := a.RegisterUser(ctx, RegisterUserParams{
		ID:    "anna",
		Name:  "Anna",
		Email: "anna@example.com",
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.PreferredMethod != model.DeliveryEmail {
		t.Errorf("inferred method = %q, want email", user.PreferredMethod)
	}

	rec, _, err := a.Assign(ctx, "anna", "story")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if rec.CurrentPosition != 0 {
		t.Errorf("new assignment cursor = %d, want 0", rec.CurrentPosition)
	}

	report, err := a.RunDailyCycle(ctx, nil)
	if err != nil {
		t.Fatalf("RunDailyCycle: %v", err)
	}
	if report.Delivered() != 1 {
		t.Fatalf("Delivered = %d, want 1", report.Delivered())
	}
	if len(transport.sends) != 1 {
		t.Fatalf("got %d sends, want 1", len(transport.sends))
	}
	send := transport.sends[0]
	if len(send.indices) != 2 || send.indices[0] != 0 || send.indices[1] != 1 {
		t.Errorf("sent indices = %v, want [0 1]", send.indices)
	}

	subject := messaging.Subject("Story")
	result, err := a.ProcessReply(ctx, "anna@example.com", subject, "[1] Odna\n[2] Dvi")
	if err != nil {
		t.Fatalf("ProcessReply: %v", err)
	}
	want := map[int]string{0: "Odna", 1: "Dvi"}
	if len(result.Saved) != len(want) {
		t.Fatalf("Saved = %v, want %v", result.Saved, want)
	}
	for idx, tr := range want {
		if result.Saved[idx] != tr {
			t.Errorf("Saved[%d] = %q, want %q", idx, result.Saved[idx], tr)
		}
	}

	status, err := a.Status("story")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.TranslatedCount != 2 {
		t.Errorf("TranslatedCount = %d, want 2", status.TranslatedCount)
	}
	if status.CompletionPercentage != 40 {
		t.Errorf("CompletionPercentage = %v, want 40", status.CompletionPercentage)
	}

	path, _, err := a.Export(ctx, "story", "txt")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	body := string(data)
	for _, fragment := range []string{"Odna", "Dvi", "[UNTRANSLATED: Three.]"} {
		if !strings.Contains(body, fragment) {
			t.Errorf("export missing %q:\n%s", fragment, body)
		}
	}
}

func TestApp_StatePersistsAcrossRestart(t *testing.T) {
	cfg := testConfig(t)
	src := writeSource(t, cfg.DataDir, "story.txt", "One. Two. Three. Four. Five.")
	ctx := context.Background()

	first := &fakeTransport{}
	a, err := newApp(cfg, zap.NewNop(), first)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	if _, err := a.RegisterText(ctx, RegisterTextParams{
		ID: "story", Title: "Story", SourceLang: "en", TargetLang: "uk",
		FilePath: src, SentencesPerDay: 2,
	}); err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	if _, err := a.RegisterUser(ctx, RegisterUserParams{ID: "anna", Name: "Anna", Email: "anna@example.com"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if _, _, err := a.Assign(ctx, "anna", "story"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := a.RunDailyCycle(ctx, nil); err != nil {
		t.Fatalf("RunDailyCycle: %v", err)
	}
	if _, err := a.ProcessReply(ctx, "anna@example.com", messaging.Subject("Story"), "[1] Odna"); err != nil {
		t.Fatalf("ProcessReply: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := &fakeTransport{}
	b := newTestApp(t, cfg, second)

	status, err := b.Status("story")
	if err != nil {
		t.Fatalf("Status after restart: %v", err)
	}
	if status.TranslatedCount != 1 {
		t.Errorf("TranslatedCount after restart = %d, want 1", status.TranslatedCount)
	}

	// The cursor survived, so the next cycle continues at sentence three.
	if _, err := b.RunDailyCycle(ctx, nil); err != nil {
		t.Fatalf("RunDailyCycle after restart: %v", err)
	}
	if len(second.sends) != 1 {
		t.Fatalf("got %d sends, want 1", len(second.sends))
	}
	indices := second.sends[0].indices
	if len(indices) != 2 || indices[0] != 2 || indices[1] != 3 {
		t.Errorf("post-restart indices = %v, want [2 3]", indices)
	}
}

func TestApp_DeliveryFailureLeavesCursor(t *testing.T) {
	cfg := testConfig(t)
	src := writeSource(t, cfg.DataDir, "story.txt", "One. Two. Three.")
	transport := &fakeTransport{fail: true}
	a := newTestApp(t, cfg, transport)
	ctx := context.Background()

	if _, err := a.RegisterText(ctx, RegisterTextParams{
		ID: "story", Title: "Story", SourceLang: "en", TargetLang: "uk",
		FilePath: src, SentencesPerDay: 2,
	}); err != nil {
		t.Fatalf("RegisterText: %v", err)
	}
	if _, err := a.RegisterUser(ctx, RegisterUserParams{ID: "anna", Name: "Anna", Email: "anna@example.com"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if _, _, err := a.Assign(ctx, "anna", "story"); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	report, err := a.RunDailyCycle(ctx, nil)
	if err != nil {
		t.Fatalf("RunDailyCycle: %v", err)
	}
	if report.Failed() != 1 {
		t.Errorf("Failed = %d, want 1", report.Failed())
	}

	status, err := a.Status("story")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.TranslatedCount != 0 {
		t.Errorf("TranslatedCount = %d, want 0", status.TranslatedCount)
	}
}

func TestApp_MethodInference(t *testing.T) {
	cfg := testConfig(t)
	a := newTestApp(t, cfg, &fakeTransport{})
	ctx := context.Background()

	sms, err := a.RegisterUser(ctx, RegisterUserParams{ID: "b", Name: "B", Phone: "+15550001111"})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if sms.PreferredMethod != model.DeliverySMS {
		t.Errorf("phone-only user method = %q, want sms", sms.PreferredMethod)
	}

	both, err := a.RegisterUser(ctx, RegisterUserParams{
		ID: "c", Name: "C", Email: "c@example.com", Phone: "+15550002222",
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if both.PreferredMethod != model.DeliveryEmail {
		t.Errorf("dual-contact user method = %q, want email", both.PreferredMethod)
	}
}
