// Package pacing holds the viewer loop to the configured frame cap.
package pacing

import (
	"time"

	"voxfade/internal/config"
)

// PausedFPS is the cap while the viewer is paused, also when uncapped.
const PausedFPS = 30

// Pacer keeps the viewer loop on a fixed schedule. The clock is
// injectable so the schedule can be checked without sleeping.
type Pacer struct {
	now   func() time.Time
	sleep func(time.Duration)
	due   time.Time
}

func New() *Pacer {
	return &Pacer{now: time.Now, sleep: time.Sleep}
}

// Interval returns the frame period for a cap; zero means uncapped.
func Interval(limit int, paused bool) time.Duration {
	if paused && (limit <= 0 || limit > PausedFPS) {
		limit = PausedFPS
	}
	if limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(limit)
}

// Wait sleeps until the next frame is due and returns how long it slept.
// A frame that overran by more than one period restarts the schedule
// instead of rushing the following frames.
func (p *Pacer) Wait(paused bool) time.Duration {
	interval := Interval(config.GetFPSLimit(), paused)
	if interval == 0 {
		p.due = time.Time{}
		return 0
	}

	now := p.now()
	if p.due.IsZero() || now.Sub(p.due) > interval {
		p.due = now
	}
	p.due = p.due.Add(interval)

	d := p.due.Sub(now)
	if d <= 0 {
		return 0
	}
	p.sleep(d)
	return d
}
