package animation

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rcrowley/go-metrics"

	"go-ledfield/debug"
	"go-ledfield/led"
	"go-ledfield/sink"
)

var (
	ErrAlreadyStarted = errors.New("engine already started")
	ErrNotStarted     = errors.New("engine not started")
	ErrStopped        = errors.New("engine already stopped")
)

// Options configures worker cadence and failure handling
type Options struct {
	UpdateInterval   time.Duration
	TransmitInterval time.Duration

	// MaxConsecutiveFailures is how many failed sends in a row are tolerated
	// before the engine reports a fatal error. 0 makes the first failure fatal.
	MaxConsecutiveFailures int

	// PauseUpdates also gates the update worker on the transmit flag.
	PauseUpdates bool
}

func (o Options) validate() error {
	if o.UpdateInterval <= 0 {
		return fmt.Errorf("update interval must be positive, got %v", o.UpdateInterval)
	}
	if o.TransmitInterval <= 0 {
		return fmt.Errorf("transmit interval must be positive, got %v", o.TransmitInterval)
	}
	if o.MaxConsecutiveFailures < 0 {
		return fmt.Errorf("max consecutive failures must not be negative")
	}
	return nil
}

type lifecycle int

const (
	idle lifecycle = iota
	running
	stopped
)

// handle is a worker goroutine that can be joined exactly once.
type handle struct {
	name string
	done chan struct{}
}

func (h *handle) join() {
	<-h.done
	debug.Log("engine", "%s worker joined", h.name)
}

// Engine runs the update and transmit workers against one controller.
//
// The controller sits behind an RWMutex: the update worker and interactive
// edits take the write lock, the transmit worker and displays take the read
// lock. The sink has its own mutex so sending never blocks an update.
// Shutdown joins the update worker first, then the transmit worker.
type Engine struct {
	mu   sync.RWMutex
	ctrl *led.Controller

	sinkMu sync.Mutex
	sink   sink.FrameSink

	opts Options

	alive           atomic.Bool
	transmitEnabled atomic.Bool

	lifeMu   sync.Mutex
	state    lifecycle
	stop     chan struct{}
	update   *handle
	transmit *handle

	fatal     chan error
	fatalOnce sync.Once

	registry    metrics.Registry
	ticks       metrics.Counter
	frames      metrics.Counter
	failures    metrics.Counter
	consecutive metrics.Gauge
	tickTime    metrics.Timer
	rate        metrics.Meter

	transmitLoops atomic.Int64
}

// NewEngine wires a controller to a sink. Transmission starts enabled.
func NewEngine(ctrl *led.Controller, s sink.FrameSink, opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	r := metrics.NewRegistry()
	e := &Engine{
		ctrl:        ctrl,
		sink:        s,
		opts:        opts,
		stop:        make(chan struct{}),
		fatal:       make(chan error, 1),
		registry:    r,
		ticks:       metrics.GetOrRegisterCounter("update.ticks", r),
		frames:      metrics.GetOrRegisterCounter("transmit.frames", r),
		failures:    metrics.GetOrRegisterCounter("transmit.failures", r),
		consecutive: metrics.GetOrRegisterGauge("transmit.consecutive_failures", r),
		tickTime:    metrics.GetOrRegisterTimer("update.duration", r),
		rate:        metrics.GetOrRegisterMeter("transmit.rate", r),
	}
	e.transmitEnabled.Store(true)
	return e, nil
}

// Start spawns both workers.
func (e *Engine) Start() error {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	switch e.state {
	case running:
		return ErrAlreadyStarted
	case stopped:
		return ErrStopped
	}

	e.alive.Store(true)
	e.update = e.spawn("update", e.updateLoop)
	e.transmit = e.spawn("transmit", e.transmitLoop)
	e.state = running

	debug.Log("engine", "started update=%v transmit=%v", e.opts.UpdateInterval, e.opts.TransmitInterval)
	return nil
}

func (e *Engine) spawn(name string, loop func()) *handle {
	h := &handle{name: name, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		loop()
	}()
	return h
}

// Stop clears the alive flag, wakes both workers, joins update then
// transmit, and closes the sink. It may be called once.
func (e *Engine) Stop() error {
	e.lifeMu.Lock()
	switch e.state {
	case idle:
		e.lifeMu.Unlock()
		return ErrNotStarted
	case stopped:
		e.lifeMu.Unlock()
		return ErrStopped
	}

	update, transmit := e.update, e.transmit
	e.update, e.transmit = nil, nil
	e.state = stopped
	e.alive.Store(false)
	close(e.stop)
	e.lifeMu.Unlock()

	update.join()
	transmit.join()
	e.rate.Stop()

	e.sinkMu.Lock()
	defer e.sinkMu.Unlock()
	if err := e.sink.Close(); err != nil {
		return fmt.Errorf("close sink: %w", err)
	}
	return nil
}

// sleep waits one cadence interval. It returns false when the engine is stopping.
func (e *Engine) sleep(t *time.Ticker) bool {
	select {
	case <-e.stop:
		return false
	case <-t.C:
		return e.alive.Load()
	}
}

func (e *Engine) updateLoop() {
	ticker := time.NewTicker(e.opts.UpdateInterval)
	defer ticker.Stop()

	last := time.Now()
	for e.alive.Load() {
		now := time.Now()
		delta := now.Sub(last).Seconds()
		last = now

		if !e.opts.PauseUpdates || e.transmitEnabled.Load() {
			e.mu.Lock()
			e.tickTime.Time(func() { e.ctrl.Tick(delta) })
			e.mu.Unlock()
			e.ticks.Inc(1)
		}

		if !e.sleep(ticker) {
			return
		}
	}
}

func (e *Engine) transmitLoop() {
	ticker := time.NewTicker(e.opts.TransmitInterval)
	defer ticker.Stop()

	var frame []byte
	failed := 0
	for e.alive.Load() {
		e.transmitLoops.Add(1)

		// the disabled path falls through to the sleep below
		if e.transmitEnabled.Load() {
			e.mu.RLock()
			frame = e.ctrl.AppendFrame(frame[:0])
			e.mu.RUnlock()

			e.sinkMu.Lock()
			err := e.sink.Send(frame)
			e.sinkMu.Unlock()

			if err != nil {
				failed++
				e.onFailure(failed, err)
			} else {
				failed = 0
				e.frames.Inc(1)
				e.rate.Mark(1)
			}
			e.consecutive.Update(int64(failed))
		}

		if !e.sleep(ticker) {
			return
		}
	}
}

// onFailure skips the frame and escalates once the run of failures exceeds
// the configured tolerance.
func (e *Engine) onFailure(run int, err error) {
	e.failures.Inc(1)
	debug.LogEvery(10, "transmit", "send failed: %v", err)

	if run > e.opts.MaxConsecutiveFailures {
		e.transmitEnabled.Store(false)
		e.fatalOnce.Do(func() {
			debug.Error("transmit", err)
			e.fatal <- fmt.Errorf("%d consecutive transmit failures: %w", run, err)
		})
	}
}

// Fatal delivers at most one unrecoverable error.
func (e *Engine) Fatal() <-chan error {
	return e.fatal
}

// Mutate runs fn with exclusive access to the controller.
func (e *Engine) Mutate(fn func(c *led.Controller)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.ctrl)
}

// Read runs fn with shared access to the controller. fn must not modify it.
func (e *Engine) Read(fn func(c *led.Controller)) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(e.ctrl)
}

// ToggleTransmit flips the transmit flag and returns the new value.
func (e *Engine) ToggleTransmit() bool {
	for {
		old := e.transmitEnabled.Load()
		if e.transmitEnabled.CompareAndSwap(old, !old) {
			debug.Log("engine", "transmit enabled=%v", !old)
			return !old
		}
	}
}

func (e *Engine) TransmitEnabled() bool {
	return e.transmitEnabled.Load()
}

func (e *Engine) Alive() bool {
	return e.alive.Load()
}

// Stats is a point-in-time view of the engine counters
type Stats struct {
	Ticks               int64
	Frames              int64
	Failures            int64
	ConsecutiveFailures int64
	MeanTick            time.Duration
	FrameRate           float64 // one-minute moving average, frames/s
	TransmitEnabled     bool
}

func (e *Engine) Stats() Stats {
	return Stats{
		Ticks:               e.ticks.Count(),
		Frames:              e.frames.Count(),
		Failures:            e.failures.Count(),
		ConsecutiveFailures: e.consecutive.Value(),
		MeanTick:            time.Duration(e.tickTime.Mean()),
		FrameRate:           e.rate.Rate1(),
		TransmitEnabled:     e.transmitEnabled.Load(),
	}
}
