package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ErrNoRecord is returned by a Persister when nothing has been stored yet.
var ErrNoRecord = errors.New("game: no stored record")

// Persister stores the state of one player.
type Persister interface {
	LoadGameState(ctx context.Context) (GameState, error)
	SaveGameState(ctx context.Context, gs GameState) error
	LoadUserProgress(ctx context.Context) (UserProgress, error)
	SaveUserProgress(ctx context.Context, up UserProgress) error
	LoadProfile(ctx context.Context) (Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
}

// ScoreRecorder is implemented by persisters that keep a score history.
type ScoreRecorder interface {
	RecordScore(ctx context.Context, rec ScoreRecord) error
}

const writeTimeout = 5 * time.Second

// batch is the set of records waiting to be written. Newer records of the
// same kind replace older ones; scores accumulate.
type batch struct {
	game     *GameState
	progress *UserProgress
	profile  *Profile
	scores   []ScoreRecord
}

func (b *batch) merge(o batch) {
	if o.game != nil {
		b.game = o.game
	}
	if o.progress != nil {
		b.progress = o.progress
	}
	if o.profile != nil {
		b.profile = o.profile
	}
	b.scores = append(b.scores, o.scores...)
}

func (b batch) empty() bool {
	return b.game == nil && b.progress == nil && b.profile == nil && len(b.scores) == 0
}

// writer hands records to a Persister on a background goroutine.
// enqueue never blocks on storage; writes happen in enqueue order.
type writer struct {
	p   Persister
	log *log.Logger

	mu      sync.Mutex
	pending batch
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

func newWriter(p Persister, logger *log.Logger) *writer {
	w := &writer{
		p:    p,
		log:  logger,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) enqueue(b batch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending.merge(b)
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.done)
	for range w.wake {
		w.flush()
	}
	w.flush()
}

func (w *writer) flush() {
	w.mu.Lock()
	b := w.pending
	w.pending = batch{}
	w.mu.Unlock()

	if b.empty() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if b.game != nil {
		if err := w.p.SaveGameState(ctx, *b.game); err != nil {
			w.log.Warn("save game state failed", "error", err)
		}
	}
	if b.progress != nil {
		if err := w.p.SaveUserProgress(ctx, *b.progress); err != nil {
			w.log.Warn("save user progress failed", "error", err)
		}
	}
	if b.profile != nil {
		if err := w.p.SaveProfile(ctx, *b.profile); err != nil {
			w.log.Warn("save profile failed", "error", err)
		}
	}
	if rec, ok := w.p.(ScoreRecorder); ok {
		for _, s := range b.scores {
			if err := rec.RecordScore(ctx, s); err != nil {
				w.log.Warn("record score failed", "run", s.RunID, "error", err)
			}
		}
	}
}

// close drains pending writes and stops the goroutine.
func (w *writer) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	close(w.wake)
	w.mu.Unlock()
	<-w.done
}

// loaded is the result of the startup reads.
type loaded struct {
	game        GameState
	hasGame     bool
	progress    UserProgress
	hasProgress bool
	profile     Profile
	hasProfile  bool
}

// loadAll runs the three startup reads in parallel and blocks until all are
// resolved. Read failures are logged and leave the record unset; only
// cancellation of ctx is returned.
func loadAll(ctx context.Context, p Persister, logger *log.Logger) (loaded, error) {
	var out loaded
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		gs, err := p.LoadGameState(gctx)
		out.game, out.hasGame = gs, readOK(logger, "game state", err)
		return gctx.Err()
	})
	g.Go(func() error {
		up, err := p.LoadUserProgress(gctx)
		out.progress, out.hasProgress = up, readOK(logger, "user progress", err)
		return gctx.Err()
	})
	g.Go(func() error {
		pr, err := p.LoadProfile(gctx)
		out.profile, out.hasProfile = pr, readOK(logger, "profile", err)
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return loaded{}, err
	}
	return out, nil
}

func readOK(logger *log.Logger, what string, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrNoRecord):
		logger.Debug("no stored record", "record", what)
	default:
		logger.Warn("load failed, using defaults", "record", what, "error", err)
	}
	return false
}
