package session

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/hintsweeper/internal/board"
)

var ErrTooManySessions = errors.New("too many live boards")

type Options struct {
	MaxSessions  int
	UndoDepth    int
	HintDuration time.Duration
	// IdleTTL removes a board nobody has looked up for that long. Zero
	// keeps boards until removed. Needs Scheduler.
	IdleTTL      time.Duration
	Scheduler    board.Scheduler
	Random       board.RandomSource
}

type Registry struct {
	sessions map[string]*Session
	opts     Options
	log      *logrus.Entry
}

func NewRegistry(log *logrus.Entry, opts Options) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		opts:     opts,
		log:      log,
	}
}

func newID() string {
	u := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(u[:])
}

// Create builds a board with mines already placed. A nil hintDuration
// falls back to the registry default.
func (r *Registry) Create(size, mines int, hintDuration *time.Duration) (*Session, error) {
	if len(r.sessions) >= r.opts.MaxSessions {
		return nil, ErrTooManySessions
	}

	id := newID()
	s := &Session{
		ID:          id,
		StartedAt:   time.Now().UTC(),
		undoDepth:   r.opts.UndoDepth,
		subscribers: make(map[*Subscriber]struct{}),
		log:         r.log.WithField("board", id),
	}

	d := r.opts.HintDuration
	if hintDuration != nil {
		d = *hintDuration
	}
	opts := []board.Option{
		board.WithHintDuration(d),
		board.WithRenderer(s),
		board.WithLogger(s.log),
	}
	if r.opts.Scheduler != nil {
		opts = append(opts, board.WithScheduler(r.opts.Scheduler))
	}
	if r.opts.Random != nil {
		opts = append(opts, board.WithRandom(r.opts.Random))
	}

	b, err := board.New(size, opts...)
	if err != nil {
		return nil, err
	}
	if err := b.SetRandomMines(mines); err != nil {
		return nil, fmt.Errorf("unable to place mines: %w", err)
	}
	s.board = b

	r.sessions[id] = s
	r.touch(s)
	s.log.WithFields(logrus.Fields{
		"size":  size,
		"mines": mines,
		"live":  len(r.sessions),
	}).Info("board created")
	s.log.Debugf("layout\n%#v", b)

	return s, nil
}

// Get also counts as activity and pushes back the board's idle expiry.
func (r *Registry) Get(id string) (*Session, bool) {
	s, ok := r.sessions[id]
	if ok {
		r.touch(s)
	}
	return s, ok
}

// touch re-arms the idle timer. A timer that already fired may still have
// its callback queued, so expiry checks the generation it was armed with.
func (r *Registry) touch(s *Session) {
	if r.opts.IdleTTL <= 0 || r.opts.Scheduler == nil {
		return
	}
	if s.idle != nil {
		s.idle.Stop()
	}
	s.idleGen++
	gen := s.idleGen
	s.idle = r.opts.Scheduler.AfterFunc(r.opts.IdleTTL, func() {
		r.expire(s, gen)
	})
}

func (r *Registry) expire(s *Session, gen uint64) {
	if s.idleGen != gen || r.sessions[s.ID] != s {
		return
	}
	s.log.WithField("idle_ttl", r.opts.IdleTTL).Info("board idle")
	r.Remove(s.ID)
}

func (r *Registry) Remove(id string) bool {
	s, ok := r.sessions[id]
	if !ok {
		return false
	}
	if s.idle != nil {
		s.idle.Stop()
	}
	s.unsubscribeAll()
	delete(r.sessions, id)
	s.log.WithField("live", len(r.sessions)).Info("board removed")
	return true
}

func (r *Registry) Len() int { return len(r.sessions) }
