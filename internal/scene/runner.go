package scene

import (
	"sync"
	"sync/atomic"
	"time"
)

// Runner drives a Scene from a ticker in one goroutine. Frames and actions
// are handed to the callbacks on that goroutine; an error from a callback
// stops the loop.
type Runner struct {
	scene    *Scene
	interval time.Duration
	onFrame  func(Frame) error
	onAction func(Action) error

	events  chan Event
	stop    chan struct{}
	done    chan struct{}
	started atomic.Bool
	once    sync.Once
	err     error
}

// NewRunner prepares a runner; call Start to begin ticking.
func NewRunner(s *Scene, onFrame func(Frame) error, onAction func(Action) error) *Runner {
	return &Runner{
		scene:    s,
		interval: s.Interval(),
		onFrame:  onFrame,
		onAction: onAction,
		events:   make(chan Event, 64),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the frame loop. Calling it more than once has no effect.
func (r *Runner) Start() {
	if r.started.CompareAndSwap(false, true) {
		go r.loop()
	}
}

// Send queues an input event. It reports false when the runner has stopped
// or the queue is full.
func (r *Runner) Send(ev Event) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.events <- ev:
		return true
	default:
		return false
	}
}

// Done is closed once the loop has exited.
func (r *Runner) Done() <-chan struct{} { return r.done }

// Err returns the callback error that stopped the loop, if any. It is only
// meaningful after Done is closed.
func (r *Runner) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Close stops the loop, waits for it to exit and closes the scene.
func (r *Runner) Close() {
	r.once.Do(func() {
		close(r.stop)
		if r.started.CompareAndSwap(false, true) {
			close(r.done)
		} else {
			<-r.done
		}
		r.scene.Close()
	})
}

func (r *Runner) loop() {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case ev := <-r.events:
			act := r.scene.Handle(ev)
			if _, none := act.(NoAction); none || r.onAction == nil {
				continue
			}
			if err := r.onAction(act); err != nil {
				r.err = err
				return
			}
		case <-ticker.C:
			if r.onFrame == nil {
				r.scene.Tick()
				continue
			}
			if err := r.onFrame(r.scene.Tick()); err != nil {
				r.err = err
				return
			}
		}
	}
}
