package launcher

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yumesaka/playtrack/internal/models"
	"github.com/yumesaka/playtrack/internal/tracker"
)

// heartbeatInterval is the cadence of time-update events while the
// game process runs.
const heartbeatInterval = time.Second

// Launcher starts game executables and emits the session event
// stream (started, 1 Hz heartbeats, ended) on the bus while the
// process runs.
type Launcher struct {
	bus    *tracker.Bus
	logger zerolog.Logger
}

// New creates a launcher publishing on the given bus.
func New(bus *tracker.Bus, logger zerolog.Logger) *Launcher {
	return &Launcher{bus: bus, logger: logger}
}

// Run launches the game's executable and blocks until the process
// exits, emitting the full start → heartbeat → end event sequence
// for the session. The end event carries accumulated seconds and
// the half-up rounded minute count.
func (l *Launcher) Run(game *models.Game) error {
	if game.ExePath == "" {
		return fmt.Errorf("game #%d has no executable path configured", game.ID)
	}

	cmd := exec.Command(game.ExePath)
	cmd.Dir = filepath.Dir(game.ExePath)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", game.ExePath, err)
	}

	startTime := time.Now().Unix()
	instanceID := uuid.NewString()

	l.logger.Info().
		Uint("game_id", game.ID).
		Str("instance_id", instanceID).
		Int("pid", cmd.Process.Pid).
		Msg("game process launched")

	l.bus.Publish(tracker.Event{
		Kind:       tracker.SessionStarted,
		GameID:     game.ID,
		InstanceID: instanceID,
		StartTime:  startTime,
	})

	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
	}()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	var accumulated int64
	var waitErr error
loop:
	for {
		select {
		case waitErr = <-exited:
			break loop
		case <-ticker.C:
			accumulated++
			l.bus.Publish(tracker.Event{
				Kind:         tracker.TimeUpdate,
				GameID:       game.ID,
				InstanceID:   instanceID,
				StartTime:    startTime,
				TotalMinutes: accumulated / 60,
				TotalSeconds: accumulated,
			})
		}
	}

	if waitErr != nil {
		// A non-zero exit still closes the session normally.
		l.logger.Warn().Err(waitErr).
			Uint("game_id", game.ID).
			Msg("game process exited with error")
	}

	endTime := time.Now().Unix()

	// Round accumulated seconds half-up to whole minutes.
	totalMinutes := accumulated / 60
	if accumulated%60 >= 30 {
		totalMinutes++
	}

	l.logger.Info().
		Uint("game_id", game.ID).
		Int64("total_seconds", accumulated).
		Int64("total_minutes", totalMinutes).
		Msg("game process exited, session closing")

	l.bus.Publish(tracker.Event{
		Kind:         tracker.SessionEnded,
		GameID:       game.ID,
		InstanceID:   instanceID,
		StartTime:    startTime,
		EndTime:      endTime,
		TotalMinutes: totalMinutes,
		TotalSeconds: accumulated,
	})

	return nil
}
