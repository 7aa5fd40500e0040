package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/emberhollow/settlement/internal/core/system"
)

// maxTicksPerAdvance caps the catch-up burst after a long stall so a
// suspended process does not replay hours of simulation in one frame.
const maxTicksPerAdvance = TicksPerSecond

// GameLoop advances simulated time in fixed increments regardless of real
// elapsed time. Real time is accumulated, scaled by the speed multiplier,
// and drained in whole ticks; the remainder carries to the next frame.
type GameLoop struct {
	runner *system.Runner
	log    *zap.Logger

	tick        uint64
	speed       float64
	accumulator time.Duration
	stop        chan struct{}
	done        chan struct{}
}

func NewGameLoop(runner *system.Runner, log *zap.Logger) *GameLoop {
	return &GameLoop{
		runner: runner,
		log:    log,
		speed:  1.0,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Tick returns the number of the most recently completed tick.
func (l *GameLoop) Tick() uint64 { return l.tick }

// SetTick restores the tick counter from a save. Call before Run.
func (l *GameLoop) SetTick(tick uint64) { l.tick = tick }

// Speed returns the current multiplier.
func (l *GameLoop) Speed() float64 { return l.speed }

// SetSpeed changes the multiplier. 0 pauses; negative values clamp to 0.
func (l *GameLoop) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	l.speed = speed
}

// Advance consumes real elapsed time and runs the due whole ticks. Returns
// how many ticks ran. This is the loop's core; Run merely feeds it wall
// clock time.
func (l *GameLoop) Advance(elapsed time.Duration) int {
	if l.speed <= 0 {
		// Paused: drop the time instead of banking it, or unpausing would
		// replay the whole pause.
		l.accumulator = 0
		return 0
	}

	l.accumulator += time.Duration(float64(elapsed) * l.speed)

	const tickDuration = time.Second / TicksPerSecond
	ran := 0
	for l.accumulator >= tickDuration && ran < maxTicksPerAdvance {
		l.accumulator -= tickDuration
		l.tick++
		l.runner.Tick(l.tick)
		ran++
	}
	if ran == maxTicksPerAdvance && l.accumulator >= tickDuration {
		// Still behind after the cap: shed the backlog.
		l.accumulator = 0
	}
	return ran
}

// Run drives Advance from the wall clock until Stop is called. Blocks.
func (l *GameLoop) Run() {
	defer close(l.done)
	l.log.Info("game loop started",
		zap.Uint64("tick", l.tick),
		zap.Float64("speed", l.speed),
	)

	const frame = 50 * time.Millisecond
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			l.Advance(now.Sub(last))
			last = now
		case <-l.stop:
			l.log.Info("game loop stopped", zap.Uint64("tick", l.tick))
			return
		}
	}
}

// Stop halts Run and waits for the in-flight frame to finish. Until it
// returns, systems may still be mutating world state; callers that read or
// snapshot the world after shutdown must go through Stop first. Call once,
// and only after Run has been started.
func (l *GameLoop) Stop() {
	close(l.stop)
	<-l.done
}
