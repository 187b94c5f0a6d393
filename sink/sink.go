package sink

import (
	"errors"
	"sync"
)

// FrameSink delivers a flat RGB frame (3 bytes per pixel, buffer order) to
// a fixture.
type FrameSink interface {
	Send(frame []byte) error
	Close() error
}

// ErrClosed is returned by Send after Close
var ErrClosed = errors.New("sink closed")

// Recorder is an in-memory sink. It keeps the last frame and a count, and can
// be told to fail; used for dry runs and tests.
type Recorder struct {
	mu     sync.Mutex
	last   []byte
	frames int
	fail   error
	closed bool
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(frame []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.fail != nil {
		return r.fail
	}
	r.last = append(r.last[:0], frame...)
	r.frames++
	return nil
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// FailWith makes every following Send return err; nil clears it.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = err
}

// Last returns a copy of the most recent frame.
func (r *Recorder) Last() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]byte(nil), r.last...)
}

func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
