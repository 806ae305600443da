// Package polling owns the single repeating timer behind automatic polling.
package polling

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"surveysync/internal/providers"
)

type PollerInterface interface {
	Activate(interval time.Duration, tick func()) bool
	Deactivate() bool
	Active() bool
	Interval() time.Duration
}

// Poller runs tick on a fixed interval. At most one timer exists at a time;
// stopping it does not affect a tick that is already running.
type Poller struct {
	mu       sync.Mutex
	cron     *gron.Cron
	interval time.Duration
	logger   providers.Logger
}

func NewPoller(logger providers.Logger) PollerInterface {
	return &Poller{logger: logger}
}

// Activate starts the timer. It reports false and changes nothing when a
// timer is already running. The interval is rounded down to whole seconds,
// with a minimum of one.
func (p *Poller) Activate(interval time.Duration, tick func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron != nil {
		return false
	}

	p.cron = gron.New()
	p.cron.AddFunc(gron.Every(interval), tick)
	p.cron.Start()
	p.interval = interval
	p.logger.Infof(providers.TypeSync, "automatic polling every %s", interval)
	return true
}

// Deactivate stops the timer. It reports false when none was running.
func (p *Poller) Deactivate() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron == nil {
		return false
	}

	p.cron.Stop()
	p.cron = nil
	p.interval = 0
	p.logger.Infof(providers.TypeSync, "automatic polling stopped")
	return true
}

func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cron != nil
}

func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}
