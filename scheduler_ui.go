package signalz

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// MainLoop is a serial run loop standing in for an application's main
// thread. The goroutine that calls Run becomes the main context until Run
// returns.
//
// Example:
//
//	loop := signalz.NewMainLoop()
//	ui := signalz.NewUIScheduler(loop)
//	go worker(ui)
//	if err := loop.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
type MainLoop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
	gid   atomic.Int64
}

// NewMainLoop creates a MainLoop that is not running yet. Actions posted
// before Run is called are kept until it is.
func NewMainLoop() *MainLoop {
	return &MainLoop{wake: make(chan struct{}, 1)}
}

// Post enqueues action to run on the loop.
func (l *MainLoop) Post(action func()) {
	l.mu.Lock()
	l.queue = append(l.queue, action)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// IsCurrent reports whether the caller is running on the loop's goroutine.
func (l *MainLoop) IsCurrent() bool {
	gid := l.gid.Load()
	return gid != 0 && gid == goid.Get()
}

// Run pins the calling goroutine as the main context and runs posted
// actions in order until ctx is done. Running a loop that is already
// running returns ErrLoopRunning.
func (l *MainLoop) Run(ctx context.Context) error {
	if !l.gid.CompareAndSwap(0, goid.Get()) {
		return ErrLoopRunning
	}
	defer l.gid.Store(0)

	for {
		l.drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *MainLoop) drain() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		action := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		action()
	}
}

// UIScheduler runs actions on a MainLoop. An action scheduled from the
// loop's own goroutine while nothing else is queued runs synchronously;
// everything else is posted, so actions still run in the order they were
// scheduled.
type UIScheduler struct {
	loop   *MainLoop
	queued atomic.Int32
}

// NewUIScheduler creates a scheduler targeting loop.
func NewUIScheduler(loop *MainLoop) *UIScheduler {
	return &UIScheduler{loop: loop}
}

// Schedule runs action on the loop. It returns nil when the action ran
// synchronously.
func (s *UIScheduler) Schedule(action func()) Disposable {
	position := s.queued.Add(1)
	if position == 1 && s.loop.IsCurrent() {
		defer s.queued.Add(-1)
		action()
		return nil
	}

	disposable := NewSimpleDisposable()
	s.loop.Post(func() {
		defer s.queued.Add(-1)
		if !disposable.IsDisposed() {
			action()
		}
	})
	return disposable
}
