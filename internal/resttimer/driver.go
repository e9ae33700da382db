package resttimer

import (
	"context"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/domain"
	log "github.com/sirupsen/logrus"
)

const DefaultInterval = time.Second

// Driver ticks a Timer while it runs.
type Driver struct {
	Timer    *Timer
	Interval time.Duration
	// OnTick sees the state after every tick that leaves the timer running.
	OnTick func(domain.RestTimerState)
	// OnExpire fires once per countdown that reaches zero.
	OnExpire func()
}

// Run blocks until ctx is done. Each Start on the timer restarts the cadence
// from a full interval.
func (d *Driver) Run(ctx context.Context) {
	interval := d.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	var ticker *time.Ticker
	var tickC <-chan time.Time
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tickC = nil, nil
		}
	}
	defer stop()

	// a timer started before Run is picked up by the buffered signal
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.Timer.Started():
			stop()
			ticker = time.NewTicker(interval)
			tickC = ticker.C
		case <-tickC:
			if d.Timer.Tick() {
				stop()
				log.Debugln("rest timer expired")
				if d.OnExpire != nil {
					d.OnExpire()
				}
				continue
			}
			state, ok := d.Timer.State()
			if !ok || !state.Running {
				stop()
				continue
			}
			if d.OnTick != nil {
				d.OnTick(state)
			}
		}
	}
}

// Elapsed calls fn with the time since startedAt immediately and then every
// interval until ctx is done.
func Elapsed(ctx context.Context, startedAt time.Time, interval time.Duration, fn func(time.Duration)) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fn(time.Since(startedAt))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(time.Since(startedAt))
		}
	}
}
