package tracker

import (
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yumesaka/playtrack/internal/models"
	"github.com/yumesaka/playtrack/internal/stats"
)

// MinSessionSeconds is the hard acceptance threshold. Sessions
// below it never reach the ledger; this filters accidental
// launches that close immediately. Not user-configurable.
const MinSessionSeconds = 60

// Accepted reports whether a session of the given length passes
// the threshold gate.
func Accepted(totalSeconds int64) bool {
	return totalSeconds >= MinSessionSeconds
}

// Store is the persistence surface the listener drives.
type Store interface {
	AppendSession(gameID uint, startTime, endTime int64, durationMinutes int, date string) (*models.Session, error)
	InitStatistics(gameID uint) error
	GetGameByID(gameID uint) (*models.Game, error)
}

// Aggregator recomputes a game's aggregate after a session close.
type Aggregator interface {
	Recompute(gameID uint) (*models.Statistics, error)
}

// BackupFunc performs the save-data backup side effect.
type BackupFunc func(gameID uint, sourcePath string, silent bool) error

// Hooks are the observer callbacks the listener exposes. Nil
// fields are simply not called, except that a non-nil OnSessionEnd
// fires exactly once per end event regardless of acceptance or
// errors.
type Hooks struct {
	OnTimeUpdate func(gameID uint, minutes, seconds int64)
	OnSessionEnd func(gameID uint, minutesRecorded int)
}

// Listener consumes session lifecycle events and drives the
// gate → ledger → reconciler → side-effect → observer pipeline.
// Nothing it does ever propagates an error back to the event
// source; every processing path terminates locally.
type Listener struct {
	store      Store
	aggregator Aggregator
	backup     BackupFunc
	hooks      Hooks
	loc        *time.Location
	logger     zerolog.Logger

	mu      sync.Mutex
	running map[uint]bool
	locks   map[uint]*sync.Mutex
}

// NewListener creates a listener. backup may be nil when no backup
// action is available.
func NewListener(store Store, aggregator Aggregator, backup BackupFunc, hooks Hooks, loc *time.Location, logger zerolog.Logger) *Listener {
	if loc == nil {
		loc = time.Local
	}
	return &Listener{
		store:      store,
		aggregator: aggregator,
		backup:     backup,
		hooks:      hooks,
		loc:        loc,
		logger:     logger,
		running:    make(map[uint]bool),
		locks:      make(map[uint]*sync.Mutex),
	}
}

// Attach subscribes the listener to all three event kinds on the
// bus and processes events until the returned cancel tears the
// subscription down.
func (l *Listener) Attach(bus *Bus) CancelFunc {
	sub := bus.Subscribe()
	go func() {
		for {
			select {
			case ev := <-sub.C:
				l.Handle(ev)
			case <-sub.Done():
				return
			}
		}
	}()
	return sub.Cancel
}

// Handle processes one event to completion.
func (l *Listener) Handle(ev Event) {
	switch ev.Kind {
	case SessionStarted:
		l.handleStart(ev)
	case TimeUpdate:
		l.handleUpdate(ev)
	case SessionEnded:
		l.handleEnd(ev)
	}
}

// gameLock returns the mutex serializing end-of-session units for
// one game. Different games proceed independently.
func (l *Listener) gameLock(gameID uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[gameID] = lock
	}
	return lock
}

func (l *Listener) setRunning(gameID uint, running bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running[gameID] = running
}

// Running reports whether a session is currently open for a game.
func (l *Listener) Running(gameID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running[gameID]
}

func (l *Listener) handleStart(ev Event) {
	lock := l.gameLock(ev.GameID)
	lock.Lock()
	defer lock.Unlock()

	l.setRunning(ev.GameID, true)

	l.logger.Info().
		Uint("game_id", ev.GameID).
		Str("instance_id", ev.InstanceID).
		Int64("start_time", ev.StartTime).
		Msg("session started")

	// Idempotent: a game that already has a statistics row is
	// untouched. Errors here must not crash the listener.
	if err := l.store.InitStatistics(ev.GameID); err != nil {
		l.logger.Error().Err(err).
			Uint("game_id", ev.GameID).
			Msg("failed to init statistics on session start")
	}
}

func (l *Listener) handleUpdate(ev Event) {
	// Heartbeats never touch the ledger or the persisted
	// aggregate; they only feed the live counter.
	if l.hooks.OnTimeUpdate != nil {
		l.hooks.OnTimeUpdate(ev.GameID, ev.TotalMinutes, ev.TotalSeconds)
	}
}

func (l *Listener) handleEnd(ev Event) {
	lock := l.gameLock(ev.GameID)
	lock.Lock()
	defer lock.Unlock()

	l.setRunning(ev.GameID, false)

	recorded := 0
	defer func() {
		if l.hooks.OnSessionEnd != nil {
			l.hooks.OnSessionEnd(ev.GameID, recorded)
		}
	}()

	if !Accepted(ev.TotalSeconds) {
		l.logger.Info().
			Uint("game_id", ev.GameID).
			Int64("total_seconds", ev.TotalSeconds).
			Msg("session below minimum duration, discarding")
		return
	}

	if ev.EndTime <= ev.StartTime {
		l.logger.Error().
			Uint("game_id", ev.GameID).
			Int64("start_time", ev.StartTime).
			Int64("end_time", ev.EndTime).
			Msg("rejecting session with non-positive interval")
		return
	}

	duration := int(math.Round(float64(ev.EndTime-ev.StartTime) / 60.0))
	date := time.Unix(ev.EndTime, 0).In(l.loc).Format(stats.DateFormat)

	if _, err := l.store.AppendSession(ev.GameID, ev.StartTime, ev.EndTime, duration, date); err != nil {
		l.logger.Error().Err(err).
			Uint("game_id", ev.GameID).
			Msg("failed to append session")
		return
	}

	if _, err := l.aggregator.Recompute(ev.GameID); err != nil {
		l.logger.Error().Err(err).
			Uint("game_id", ev.GameID).
			Msg("failed to recompute statistics")
		return
	}

	recorded = duration

	l.logger.Info().
		Uint("game_id", ev.GameID).
		Int("minutes", duration).
		Str("date", date).
		Msg("session recorded")

	l.dispatchBackup(ev.GameID)
}

// dispatchBackup runs the best-effort backup side effect for an
// accepted session end. Failures are logged and fully isolated
// from the statistics path and the observer callback.
func (l *Listener) dispatchBackup(gameID uint) {
	if l.backup == nil {
		return
	}

	game, err := l.store.GetGameByID(gameID)
	if err != nil {
		l.logger.Error().Err(err).
			Uint("game_id", gameID).
			Msg("failed to load game for backup dispatch")
		return
	}
	if !game.AutoBackup || game.SavePath == "" {
		return
	}

	if err := l.backup(gameID, game.SavePath, true); err != nil {
		l.logger.Error().Err(err).
			Uint("game_id", gameID).
			Str("save_path", game.SavePath).
			Msg("automatic save-data backup failed")
	}
}
