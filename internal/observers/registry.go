// Package observers fans synchronization events out to any number of
// subscribers. Subscribers are held weakly: once the owner drops its last
// reference the subscription disappears on its own.
package observers

import (
	"sync"
	"weak"

	"surveysync/internal/models"
)

// Poster schedules work on the main loop.
type Poster interface {
	Post(fn func()) bool
}

type handle struct {
	// key is a weak.Pointer of the subscriber's concrete type; weak pointers
	// made from the same pointer compare equal.
	key     any
	resolve func() Observer
}

type Registry struct {
	mu      sync.Mutex
	handles []handle
	loop    Poster
}

func NewRegistry(loop Poster) *Registry {
	return &Registry{loop: loop}
}

// Subscribe registers o without keeping it alive. Subscribing an observer
// that is already registered is a no-op and reports false.
func Subscribe[T any, P interface {
	*T
	Observer
}](r *Registry, o P) bool {
	if o == nil {
		return false
	}
	wp := weak.Make((*T)(o))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	for _, h := range r.handles {
		if h.key == any(wp) {
			return false
		}
	}
	r.handles = append(r.handles, handle{
		key: wp,
		resolve: func() Observer {
			if p := wp.Value(); p != nil {
				return P(p)
			}
			return nil
		},
	})
	return true
}

// Unsubscribe removes o. Unknown observers are ignored.
func Unsubscribe[T any, P interface {
	*T
	Observer
}](r *Registry, o P) bool {
	if o == nil {
		return false
	}
	key := any(weak.Make((*T)(o)))

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.handles {
		if h.key == key {
			r.handles = append(r.handles[:i:i], r.handles[i+1:]...)
			return true
		}
	}
	return false
}

// Len is the number of subscribers still alive.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	return len(r.handles)
}

func (r *Registry) pruneLocked() {
	live := r.handles[:0]
	for _, h := range r.handles {
		if h.resolve() != nil {
			live = append(live, h)
		}
	}
	clear(r.handles[len(live):])
	r.handles = live
}

// live resolves the current subscribers. Iteration happens on the copy, so
// callbacks may subscribe or unsubscribe freely.
func (r *Registry) live() []Observer {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	out := make([]Observer, 0, len(r.handles))
	for _, h := range r.handles {
		if o := h.resolve(); o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (r *Registry) publish(deliver func(Observer)) {
	r.loop.Post(func() {
		for _, o := range r.live() {
			deliver(o)
		}
	})
}

func (r *Registry) PublishSurveysChanged(change models.SurveysChange) {
	r.publish(func(o Observer) { o.OnSurveysChanged(change) })
}

func (r *Registry) PublishTransactionsChanged(unpaid []models.Transaction) {
	r.publish(func(o Observer) { o.OnTransactionsChanged(unpaid) })
}

func (r *Registry) PublishContentOpened(kind ContentKind) {
	r.publish(func(o Observer) { o.OnContentOpened(kind) })
}

func (r *Registry) PublishContentClosed(kind ContentKind) {
	r.publish(func(o Observer) { o.OnContentClosed(kind) })
}
