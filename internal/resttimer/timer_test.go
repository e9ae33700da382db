package resttimer

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTimer_Countdown(t *testing.T) {
	timer := New()
	_, ok := timer.State()
	assert.False(t, ok)
	assert.False(t, timer.Tick(), "tick on an absent timer is a no-op")

	require.True(t, timer.Start(90))
	for i := 0; i < 3; i++ {
		assert.False(t, timer.Tick())
	}
	state, ok := timer.State()
	require.True(t, ok)
	assert.Equal(t, domain.RestTimerState{Running: true, Seconds: 87, Duration: 90}, state)
}

func TestTimer_Expiry(t *testing.T) {
	timer := New()
	require.True(t, timer.Start(2))
	assert.False(t, timer.Tick())
	assert.True(t, timer.Tick())
	assert.True(t, timer.Expired())

	state, ok := timer.State()
	require.True(t, ok, "expired timer stays visible")
	assert.Equal(t, domain.RestTimerState{Running: false, Seconds: 0, Duration: 2}, state)

	assert.False(t, timer.Tick(), "expiry is reported once")
	timer.Stop()
	_, ok = timer.State()
	assert.False(t, ok)
}

func TestTimer_StartReplaces(t *testing.T) {
	timer := New()
	require.True(t, timer.Start(90))
	timer.Tick()
	require.True(t, timer.Start(60))
	state, _ := timer.State()
	assert.Equal(t, domain.RestTimerState{Running: true, Seconds: 60, Duration: 60}, state)

	assert.False(t, timer.Start(0))
	assert.False(t, timer.Start(-5))
	state, _ = timer.State()
	assert.Equal(t, 60, state.Seconds)
}

func TestDriver_TicksUntilExpiry(t *testing.T) {
	timer := New()
	var expiries atomic.Int32
	expired := make(chan struct{}, 1)
	var mu sync.Mutex
	var ticks []int

	d := &Driver{
		Timer:    timer,
		Interval: 5 * time.Millisecond,
		OnTick: func(s domain.RestTimerState) {
			mu.Lock()
			ticks = append(ticks, s.Seconds)
			mu.Unlock()
		},
		OnExpire: func() {
			expiries.Add(1)
			expired <- struct{}{}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	require.True(t, timer.Start(3))
	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never expired")
	}

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), expiries.Load())
	assert.True(t, timer.Expired())
	mu.Lock()
	assert.Equal(t, []int{2, 1}, ticks)
	mu.Unlock()

	cancel()
	<-done
}

func TestDriver_StopHaltsTicking(t *testing.T) {
	timer := New()
	d := &Driver{Timer: timer, Interval: 5 * time.Millisecond, OnExpire: func() {
		t.Error("stopped timer must not expire")
	}}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	require.True(t, timer.Start(100))
	time.Sleep(20 * time.Millisecond)
	timer.Stop()
	time.Sleep(20 * time.Millisecond)
	_, ok := timer.State()
	assert.False(t, ok)

	cancel()
	<-done
}

func TestDriver_RestartOnNewStart(t *testing.T) {
	timer := New()
	expired := make(chan struct{}, 1)
	d := &Driver{Timer: timer, Interval: 5 * time.Millisecond, OnExpire: func() { expired <- struct{}{} }}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	require.True(t, timer.Start(1000))
	time.Sleep(20 * time.Millisecond)
	require.True(t, timer.Start(2))

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("restarted timer never expired")
	}
	state, ok := timer.State()
	require.True(t, ok)
	assert.Equal(t, 2, state.Duration)

	cancel()
	<-done
}

func TestElapsed(t *testing.T) {
	started := time.Now().Add(-time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan time.Duration, 16)
	done := make(chan struct{})
	go func() {
		Elapsed(ctx, started, 5*time.Millisecond, func(d time.Duration) {
			select {
			case calls <- d:
			default:
			}
		})
		close(done)
	}()

	first := <-calls
	assert.GreaterOrEqual(t, first, time.Minute)
	second := <-calls
	assert.GreaterOrEqual(t, second, first)

	cancel()
	<-done
}
