package persistence

import (
	"errors"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"surveysync/internal/persistence/interfaces"
	"surveysync/internal/providers"
	"surveysync/internal/structures"
)

var errSchedulerClosed = errors.New("scheduler closed")

// Scheduler writes the state file periodically. With no file path
// configured every operation is a no-op.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	fileManager *FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex
	closed      bool
}

func (s *Scheduler) enabled() bool {
	return s.config.Persistence.FilePath != ""
}

func (s *Scheduler) Init() {
	if !s.enabled() || s.config.Persistence.SaveInterval <= 0 {
		return
	}
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		if err := s.save(); err != nil {
			return
		}
		s.logger.Debugf(providers.TypeApp, "Persisted state to file %s", s.config.Persistence.FilePath)
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if !s.enabled() {
		return nil
	}
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	if !s.enabled() {
		return nil
	}
	s.logger.Infof(providers.TypeApp, "Persisting state to file...")
	return s.save()
}

// Close stops the timer and releases the compressor. Persist must not be
// called afterwards.
func (s *Scheduler) Close() {
	s.Stop()
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.fileManager.Close()
}

func (s *Scheduler) save() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	if s.closed {
		return errSchedulerClosed
	}

	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		fileManager: fileManager,
	}
}
