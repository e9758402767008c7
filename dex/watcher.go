package dex

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/alphadex-cli/alphadex/log"
)

// NextLoader is the part of Loader a Watcher drives.
type NextLoader interface {
	LoadNext(ctx context.Context) (*Page, error)
	HasNext() bool
	Len() int
}

// Watcher turns viewport events into LoadNext calls.
// At most one load is in flight; events arriving meanwhile are dropped.
// So are events measured against a shorter list than the loader holds,
// since they predate the last page being shown.
type Watcher struct {
	loader  NextLoader
	trigger Trigger
	lock    *ScrollLock
	onLoad  func(*Page, error)

	events   chan Viewport
	inFlight atomic.Bool
	stopped  atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewWatcher returns a stopped watcher. onLoad is called from a background
// goroutine after every load it starts. lock may be nil.
func NewWatcher(loader NextLoader, trigger Trigger, lock *ScrollLock, onLoad func(*Page, error)) *Watcher {
	if onLoad == nil {
		onLoad = func(*Page, error) {}
	}
	return &Watcher{
		loader:  loader,
		trigger: trigger,
		lock:    lock,
		onLoad:  onLoad,
		events:  make(chan Viewport, 16),
	}
}

// Start registers the listener. It must be called once.
func (w *Watcher) Start(ctx context.Context) {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.listen()
}

// Observe reports a viewport position. It never blocks and returns false once stopped.
func (w *Watcher) Observe(v Viewport) bool {
	if w.stopped.Load() {
		return false
	}
	select {
	case w.events <- v:
	default:
	}
	return true
}

// InFlight reports whether a load started by the watcher is running.
func (w *Watcher) InFlight() bool {
	return w.inFlight.Load()
}

// Stop deregisters the listener, cancels a running load and waits for both.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		w.stopped.Store(true)
		if w.cancel != nil {
			w.cancel()
		}
		w.wg.Wait()
	})
}

func (w *Watcher) listen() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case v := <-w.events:
			w.handle(v)
		}
	}
}

func (w *Watcher) handle(v Viewport) {
	if w.lock != nil && w.lock.Locked() {
		return
	}
	if v.Total < w.loader.Len() {
		return
	}
	if !w.trigger.Fire(v) || !w.loader.HasNext() {
		return
	}
	if !w.inFlight.CompareAndSwap(false, true) {
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.inFlight.Store(false)

		page, err := w.loader.LoadNext(w.ctx)
		if errors.Is(err, context.Canceled) && w.ctx.Err() != nil {
			log.Debug("page load cancelled by watcher stop")
			return
		}
		w.onLoad(page, err)
	}()
}
