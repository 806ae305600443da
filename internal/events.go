package internal

import (
	"surveysync/internal/models"
	"surveysync/internal/observers"
	"surveysync/internal/providers"
)

// eventLog writes every engine notification to the sync log. The registry
// holds observers weakly, so App keeps the only strong reference.
type eventLog struct {
	observers.BaseObserver
	logger providers.Logger
}

func newEventLog(logger providers.Logger) *eventLog {
	return &eventLog{logger: logger}
}

func (e *eventLog) OnSurveysChanged(change models.SurveysChange) {
	e.logger.Infof(providers.TypeSync, "surveys changed: %d added, %d updated, %d removed",
		len(change.Added), len(change.Updated), len(change.Removed))
}

func (e *eventLog) OnTransactionsChanged(unpaid []models.Transaction) {
	e.logger.Infof(providers.TypeSync, "unpaid transactions: %d", len(unpaid))
}

func (e *eventLog) OnContentOpened(kind observers.ContentKind) {
	e.logger.Debugf(providers.TypeSync, "content opened: %s", kind)
}

func (e *eventLog) OnContentClosed(kind observers.ContentKind) {
	e.logger.Debugf(providers.TypeSync, "content closed: %s", kind)
}
