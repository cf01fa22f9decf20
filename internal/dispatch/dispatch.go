// Package dispatch runs the daily delivery cycle: for every targeted user
// and every text assigned to them, it sends the next unsent slice through
// the outbound transport and advances the progress cursor on confirmed
// delivery.
//
// Failures are isolated per (user, text) pair: one failed delivery is
// reported and never blocks the rest of the cycle. Because an advanced
// cursor is the only state a delivery leaves behind, re-running a cycle is
// safe; already-delivered assignments are skipped.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yshymko/peredai/internal/catalog"
	"github.com/yshymko/peredai/internal/model"
	"github.com/yshymko/peredai/internal/progress"
)

// Transport is the outbound delivery contract. Ordinary delivery failures
// come back as ok=false; errors are reserved for configuration problems
// (missing contact, unknown method). Either way the dispatcher records a
// per-target failure and keeps going.
type Transport interface {
	Send(ctx context.Context, user *model.User, textTitle string, sentences []string, indices []int) (bool, error)
}

// Result describes the outcome of one (user, text) delivery attempt.
type Result struct {
	UserID    string
	TextID    string
	Sent      int  // sentences delivered this cycle
	Completed bool // cursor already at or past the end; nothing to send
	Err       error
}

// Report collects the results of one cycle run.
type Report struct {
	Results []Result
}

// Delivered counts targets that received sentences this cycle.
func (r *Report) Delivered() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil && res.Sent > 0 {
			n++
		}
	}
	return n
}

// Failed counts targets whose delivery failed.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Dispatcher walks users and their assignments once per cycle.
type Dispatcher struct {
	catalog   *catalog.Catalog
	progress  *progress.Store
	transport Transport
	log       *zap.Logger
	now       func() time.Time
}

func New(cat *catalog.Catalog, store *progress.Store, transport Transport, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		catalog:   cat,
		progress:  store,
		transport: transport,
		log:       log,
		now:       time.Now,
	}
}

// RunDailyCycle delivers the next portion of every assignment belonging to
// the targeted users (all registered users when userIDs is empty). Users
// are processed concurrently; a user's own assignments run sequentially, so
// no progress record is ever written from two goroutines at once.
func (d *Dispatcher) RunDailyCycle(ctx context.Context, userIDs []string) *Report {
	users, missing := d.targets(userIDs)

	type userResults struct {
		index   int
		results []Result
	}
	out := make(chan userResults, len(users))

	var wg sync.WaitGroup
	for i, user := range users {
		wg.Add(1)
		go func(index int, u *model.User) {
			defer wg.Done()
			out <- userResults{index: index, results: d.deliverAll(ctx, u)}
		}(i, user)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	collected := make([][]Result, len(users))
	for ur := range out {
		collected[ur.index] = ur.results
	}

	report := &Report{}
	for _, id := range missing {
		report.Results = append(report.Results, Result{
			UserID: id,
			Err:    fmt.Errorf("%w: %q", model.ErrUnknownUser, id),
		})
	}
	for _, results := range collected {
		report.Results = append(report.Results, results...)
	}

	d.log.Info("daily cycle finished",
		zap.Int("targets", len(report.Results)),
		zap.Int("delivered", report.Delivered()),
		zap.Int("failed", report.Failed()))
	return report
}

func (d *Dispatcher) targets(userIDs []string) ([]*model.User, []string) {
	if len(userIDs) == 0 {
		return d.progress.Users(), nil
	}

	var users []*model.User
	var missing []string
	for _, id := range userIDs {
		user, err := d.progress.GetUser(id)
		if err != nil {
			missing = append(missing, id)
			continue
		}
		users = append(users, user)
	}
	return users, missing
}

func (d *Dispatcher) deliverAll(ctx context.Context, user *model.User) []Result {
	var results []Result
	for _, rec := range d.progress.RecordsFor(user.ID) {
		res := d.deliver(ctx, user, rec)
		switch {
		case res.Err != nil:
			d.log.Warn("delivery failed",
				zap.String("user_id", res.UserID),
				zap.String("text_id", res.TextID),
				zap.Error(res.Err))
		case res.Completed:
			d.log.Info("text already fully delivered",
				zap.String("user_id", res.UserID),
				zap.String("text_id", res.TextID))
		default:
			d.log.Info("portion delivered",
				zap.String("user_id", res.UserID),
				zap.String("text_id", res.TextID),
				zap.Int("sentences", res.Sent))
		}
		results = append(results, res)
	}
	return results
}

func (d *Dispatcher) deliver(ctx context.Context, user *model.User, rec *model.TranslationProgress) Result {
	res := Result{UserID: user.ID, TextID: rec.TextID}

	text, err := d.catalog.Get(rec.TextID)
	if err != nil {
		res.Err = err
		return res
	}

	start := rec.CurrentPosition
	if start >= len(text.Sentences) {
		res.Completed = true
		return res
	}

	slice, err := d.catalog.DailyPortion(rec.TextID, start)
	if err != nil {
		res.Err = err
		return res
	}

	indices := make([]int, len(slice))
	for i := range indices {
		indices[i] = start + i
	}

	ok, err := d.transport.Send(ctx, user, text.Title, slice, indices)
	if err != nil {
		res.Err = err
		return res
	}
	if !ok {
		res.Err = fmt.Errorf("%w: user %q, text %q", model.ErrDeliveryFailed, user.ID, rec.TextID)
		return res
	}

	if err := d.progress.Advance(user.ID, rec.TextID, start+len(slice), d.now()); err != nil {
		res.Err = err
		return res
	}
	res.Sent = len(slice)
	return res
}
