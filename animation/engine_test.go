package animation

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ledfield/effect"
	"go-ledfield/geom"
	"go-ledfield/led"
	"go-ledfield/pixel"
	"go-ledfield/sink"
)

func newController(t *testing.T, count int) *led.Controller {
	t.Helper()
	c, err := led.NewController(count, pixel.Layout{}, led.Options{Env: effect.NewEnv(geom.DefaultBox, 1)})
	require.NoError(t, err)
	return c
}

func newEngine(t *testing.T, rec *sink.Recorder, opts Options) *Engine {
	t.Helper()
	e, err := NewEngine(newController(t, 16), rec, opts)
	require.NoError(t, err)
	return e
}

func fast() Options {
	return Options{
		UpdateInterval:         time.Millisecond,
		TransmitInterval:       2 * time.Millisecond,
		MaxConsecutiveFailures: 3,
	}
}

func TestNewEngineRejectsBadIntervals(t *testing.T) {
	_, err := NewEngine(newController(t, 1), sink.NewRecorder(), Options{TransmitInterval: time.Millisecond})
	assert.Error(t, err)

	_, err = NewEngine(newController(t, 1), sink.NewRecorder(), Options{UpdateInterval: time.Millisecond})
	assert.Error(t, err)
}

func TestLifecycle(t *testing.T) {
	rec := sink.NewRecorder()
	e := newEngine(t, rec, fast())

	assert.ErrorIs(t, e.Stop(), ErrNotStarted)
	require.NoError(t, e.Start())
	assert.True(t, e.Alive())
	assert.ErrorIs(t, e.Start(), ErrAlreadyStarted)

	require.NoError(t, e.Stop())
	assert.False(t, e.Alive())
	assert.True(t, rec.Closed())

	assert.ErrorIs(t, e.Stop(), ErrStopped)
	assert.ErrorIs(t, e.Start(), ErrStopped)
}

func TestConcurrentWorkersAndEdits(t *testing.T) {
	rec := sink.NewRecorder()
	e := newEngine(t, rec, fast())
	require.NoError(t, e.Start())

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			e.Mutate(func(c *led.Controller) {
				switch i % 4 {
				case 0:
					c.CycleEffect(1)
				case 1:
					c.AdjustBrightness(-0.05)
				case 2:
					c.HandleKey("k")
				default:
					c.AdjustBrightness(0.05)
				}
			})
			time.Sleep(100 * time.Microsecond)
		}
	}()
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			e.Read(func(c *led.Controller) {
				s := c.Snapshot()
				assert.Len(t, s.Colours, 16)
			})
			time.Sleep(100 * time.Microsecond)
		}
	}()

	require.Eventually(t, func() bool {
		s := e.Stats()
		return s.Ticks >= 1000 && s.Frames >= 1000
	}, 30*time.Second, 10*time.Millisecond)

	close(done)
	wg.Wait()

	start := time.Now()
	require.NoError(t, e.Stop())
	assert.Less(t, time.Since(start), time.Second)

	assert.Len(t, rec.Last(), 16*led.BytesPerPixel)
	assert.Zero(t, e.Stats().Failures)
}

func TestDisabledTransmitStillSleeps(t *testing.T) {
	rec := sink.NewRecorder()
	e := newEngine(t, rec, Options{
		UpdateInterval:   10 * time.Millisecond,
		TransmitInterval: 10 * time.Millisecond,
	})
	assert.False(t, e.ToggleTransmit())
	assert.False(t, e.TransmitEnabled())

	require.NoError(t, e.Start())
	time.Sleep(100 * time.Millisecond)

	start := time.Now()
	require.NoError(t, e.Stop())
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	assert.Zero(t, rec.Frames())
	assert.LessOrEqual(t, e.transmitLoops.Load(), int64(20))
	assert.Positive(t, e.Stats().Ticks)
}

func TestToggleResumesTransmission(t *testing.T) {
	rec := sink.NewRecorder()
	e := newEngine(t, rec, fast())
	e.ToggleTransmit()
	require.NoError(t, e.Start())
	defer e.Stop()

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, rec.Frames())

	assert.True(t, e.ToggleTransmit())
	require.Eventually(t, func() bool { return rec.Frames() > 5 }, 5*time.Second, 5*time.Millisecond)
}

func TestPauseUpdatesWhenDisabled(t *testing.T) {
	opts := fast()
	opts.PauseUpdates = true
	e := newEngine(t, sink.NewRecorder(), opts)
	e.ToggleTransmit()

	require.NoError(t, e.Start())
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, e.Stats().Ticks)

	e.ToggleTransmit()
	require.Eventually(t, func() bool { return e.Stats().Ticks > 0 }, 5*time.Second, 5*time.Millisecond)
	require.NoError(t, e.Stop())
}

func TestTransientFailuresAreSkipped(t *testing.T) {
	rec := sink.NewRecorder()
	e := newEngine(t, rec, Options{
		UpdateInterval:         time.Millisecond,
		TransmitInterval:       time.Millisecond,
		MaxConsecutiveFailures: 1000,
	})
	rec.FailWith(errors.New("network unreachable"))
	require.NoError(t, e.Start())
	defer e.Stop()

	require.Eventually(t, func() bool { return e.Stats().Failures >= 3 }, 5*time.Second, time.Millisecond)
	rec.FailWith(nil)
	require.Eventually(t, func() bool {
		s := e.Stats()
		return s.Frames > 0 && s.ConsecutiveFailures == 0
	}, 5*time.Second, time.Millisecond)

	assert.True(t, e.TransmitEnabled())
	select {
	case err := <-e.Fatal():
		t.Fatalf("unexpected fatal error: %v", err)
	default:
	}
}

func TestConsecutiveFailuresEscalate(t *testing.T) {
	rec := sink.NewRecorder()
	e := newEngine(t, rec, fast())
	cause := errors.New("connection refused")
	rec.FailWith(cause)
	require.NoError(t, e.Start())

	select {
	case err := <-e.Fatal():
		assert.ErrorIs(t, err, cause)
	case <-time.After(5 * time.Second):
		t.Fatal("no fatal error reported")
	}

	assert.False(t, e.TransmitEnabled())
	assert.EqualValues(t, 4, e.Stats().Failures)
	require.NoError(t, e.Stop())
}

func TestZeroToleranceFailsImmediately(t *testing.T) {
	rec := sink.NewRecorder()
	opts := fast()
	opts.MaxConsecutiveFailures = 0
	e := newEngine(t, rec, opts)
	rec.FailWith(errors.New("boom"))
	require.NoError(t, e.Start())
	defer e.Stop()

	select {
	case err := <-e.Fatal():
		assert.Contains(t, err.Error(), "1 consecutive")
	case <-time.After(5 * time.Second):
		t.Fatal("no fatal error reported")
	}
}
