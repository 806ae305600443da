package banner

import "sync"

// StatePresenter keeps the mounted banner so it can be served to a host
// that renders it elsewhere.
type StatePresenter struct {
	mu       sync.RWMutex
	current  *Mount
	mounts   int
	unmounts int
}

func NewStatePresenter() *StatePresenter {
	return &StatePresenter{}
}

func (p *StatePresenter) Mount(m Mount) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = &m
	p.mounts++
}

func (p *StatePresenter) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		p.unmounts++
	}
	p.current = nil
}

// Current returns the mounted banner, if any.
func (p *StatePresenter) Current() (Mount, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return Mount{}, false
	}
	return *p.current, true
}

// Counts reports how often a banner was mounted and unmounted.
func (p *StatePresenter) Counts() (mounts, unmounts int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mounts, p.unmounts
}
