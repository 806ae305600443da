package services

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"

	"surveysync/internal/assets"
	"surveysync/internal/banner"
	"surveysync/internal/diff"
	"surveysync/internal/mainloop"
	"surveysync/internal/models"
	"surveysync/internal/observers"
	"surveysync/internal/polling"
	"surveysync/internal/providers"
	"surveysync/internal/settings"
	"surveysync/internal/structures"
	"surveysync/internal/transport"
)

// ContentRequest tells the host what to show in the content viewer.
// External requests are meant for the system browser.
type ContentRequest struct {
	Kind     observers.ContentKind `json:"-"`
	KindName string                `json:"kind"`
	URL      string                `json:"url"`
	External bool                  `json:"external"`
}

type SyncServiceInterface interface {
	Start(ctx context.Context)
	Stop()
	Wait(ctx context.Context) error
	Observers() *observers.Registry
	SetFailureHandler(fn func(error))

	RequestUpdate(includeUnpaid bool)
	ActivateAutomaticPolling(interval time.Duration) bool
	DeactivatePolling() bool
	PollingActive() bool
	MarkTransactionPaid(transID, messageID string)
	ForceResyncFromPostback(secureHash string)
	Foreground()

	SetBannerDesire(desire bool)
	BannerDesire() bool
	BannerState() banner.State
	SetStyle(style settings.Style)
	SetScreen(device models.DeviceMetrics)
	ClearAssetCache()

	OpenSurveyList() ContentRequest
	OpenSurvey(id string) ContentRequest
	OpenHideDialog() ContentRequest
	OpenHelp() ContentRequest
	CloseContent(kind observers.ContentKind)
	ContentActive() bool

	Snapshot() *models.SurveySnapshot
	UnpaidTransactions() []models.Transaction
	UnpaidVersion() uint64
	HasSurveysAvailable() bool

	ExportState() *models.State
	ImportState(state *models.State)
}

// SyncService keeps the current survey snapshot and the unpaid ledger in
// step with the survey API. Every mutation of shared state and every
// observer notification happens on the main loop; network requests run on
// their own goroutines and hand their results back to it.
type SyncService struct {
	conf     *structures.Config
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	store    settings.StoreInterface
	client   transport.ClientInterface
	loop     *mainloop.Loop
	registry *observers.Registry
	poller   polling.PollerInterface
	fetcher  assets.FetcherInterface
	banner   *banner.Machine

	snapshot      atomic.Pointer[models.SurveySnapshot]
	ledger        *models.Ledger
	sequence      atomic.Uint64
	desire        atomic.Bool
	contentActive atomic.Bool

	// owned by the main loop
	appliedSeq  uint64
	contentKind observers.ContentKind

	requests  sync.WaitGroup
	onFailure func(error)
}

func NewSyncService(
	conf *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	store settings.StoreInterface,
	client transport.ClientInterface,
	loop *mainloop.Loop,
	poller polling.PollerInterface,
	fetcher assets.FetcherInterface,
	presenter banner.Presenter,
) SyncServiceInterface {
	s := &SyncService{
		conf:     conf,
		logger:   logger,
		metrics:  metrics,
		store:    store,
		client:   client,
		loop:     loop,
		registry: observers.NewRegistry(loop),
		poller:   poller,
		fetcher:  fetcher,
		ledger:   models.NewLedger(),
	}
	s.snapshot.Store(models.EmptySnapshot())
	s.banner = banner.NewMachine(presenter, fetcher, store, metrics, logger)
	s.banner.SetFailureHandler(s.report)
	return s
}

// Start runs the main loop and, depending on configuration, issues the first
// poll and turns on automatic polling.
func (s *SyncService) Start(ctx context.Context) {
	go s.loop.Run(ctx)

	if s.conf.Sync.PollOnStart {
		s.RequestUpdate(true)
	}
	if s.conf.Sync.AutoPolling {
		s.ActivateAutomaticPolling(s.conf.Sync.PollInterval)
	}
}

// Stop cancels the polling timer and closes the main loop. Requests in
// flight finish but are no longer applied.
func (s *SyncService) Stop() {
	s.DeactivatePolling()
	s.loop.Close()
}

// Wait blocks until every request issued so far has been applied.
func (s *SyncService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.requests.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return s.loop.Wait(ctx)
}

func (s *SyncService) Observers() *observers.Registry {
	return s.registry
}

// SetFailureHandler installs the host callback for failures. It is called
// on the main loop. Set it before Start.
func (s *SyncService) SetFailureHandler(fn func(error)) {
	s.onFailure = fn
}

func (s *SyncService) RequestUpdate(includeUnpaid bool) {
	extra := url.Values{}
	if includeUnpaid {
		extra.Set(transport.ParamShowUnpaidTransactions, strconv.FormatBool(true))
	}
	s.issue(extra)
}

func (s *SyncService) ActivateAutomaticPolling(interval time.Duration) bool {
	if interval <= 0 {
		interval = structures.DefaultPollInterval
	}
	started := s.poller.Activate(interval, func() { s.RequestUpdate(false) })
	s.metrics.SetPollingActive(s.poller.Active())
	return started
}

func (s *SyncService) DeactivatePolling() bool {
	stopped := s.poller.Deactivate()
	s.metrics.SetPollingActive(s.poller.Active())
	return stopped
}

func (s *SyncService) PollingActive() bool {
	return s.poller.Active()
}

// MarkTransactionPaid drops the transaction from the ledger right away and
// then tells the server. The server's answer is reconciled like any poll.
func (s *SyncService) MarkTransactionPaid(transID, messageID string) {
	s.requests.Add(1)
	posted := s.loop.Post(func() {
		if s.ledger.Remove(transID) {
			s.metrics.SetUnpaidTransactions(s.ledger.Len())
			s.registry.PublishTransactionsChanged(s.ledger.Items())
		}

		extra := url.Values{}
		extra.Set(transport.ParamTransactionMode, "full")
		extra.Set(transport.ParamSetTransactionPaid, strconv.FormatBool(true))
		extra.Set(transport.ParamMessageID, messageID)
		s.send(extra)
	})
	if !posted {
		s.requests.Done()
	}
}

func (s *SyncService) ForceResyncFromPostback(secureHash string) {
	extra := url.Values{}
	extra.Set(transport.ParamShowUnpaidTransactions, strconv.FormatBool(true))
	extra.Set(transport.ParamSecureHash, secureHash)
	s.issue(extra)
}

// Foreground is called when the host app comes back to the foreground.
func (s *SyncService) Foreground() {
	s.RequestUpdate(true)
}

func (s *SyncService) issue(extra url.Values) {
	s.requests.Add(1)
	s.send(extra)
}

// send runs one survey request on a slot already taken in requests. Its
// sequence number is taken here, so responses can be ordered by issue time
// regardless of completion order.
func (s *SyncService) send(extra url.Values) {
	seq := s.sequence.Inc()
	rawURL := transport.SurveyURL(s.store.Load(), extra)
	timeout := s.conf.Sync.RequestTimeout
	if timeout <= 0 {
		timeout = structures.DefaultRequestTimeout
	}

	go func() {
		defer s.requests.Done()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		resp, err := s.client.FetchSurveys(ctx, rawURL)
		s.metrics.ObservePollDuration(time.Since(start))
		if err == nil && resp == nil {
			err = transport.ErrEmptyResponse
		}

		if !s.loop.Post(func() { s.reconcile(seq, resp, err) }) {
			s.logger.Debugf(providers.TypeSync, "response #%d arrived after shutdown", seq)
		}
	}()
}

func (s *SyncService) reconcile(seq uint64, resp *models.SurveyResponse, err error) {
	if err != nil {
		s.metrics.IncPolls(transport.Kind(err))
		s.report(err)
		return
	}
	if seq <= s.appliedSeq {
		s.logger.Infof(providers.TypeSync, "discarding response #%d, #%d already applied", seq, s.appliedSeq)
		s.metrics.IncStaleResponses()
		return
	}
	s.appliedSeq = seq
	s.metrics.IncPolls(transport.Kind(nil))

	old := s.snapshot.Load()
	next := resp.ToSnapshot(seq, time.Now())
	change := diff.Compute(old.Offers, next.Offers)
	s.snapshot.Store(next)
	s.metrics.SetSurveysAvailable(next.AvailableCount)

	s.logger.Debugf(providers.TypeSync, "response #%d: %d added, %d updated, %d removed",
		seq, len(change.Added), len(change.Updated), len(change.Removed))
	s.registry.PublishSurveysChanged(change)

	if len(resp.Transactions) > 0 {
		s.ledger.Replace(resp.Transactions)
		s.metrics.SetUnpaidTransactions(s.ledger.Len())
		s.registry.PublishTransactionsChanged(s.ledger.Items())
	}

	s.evaluateBanner(banner.TriggerPoll)
}

// report is the single failure channel: the log and the host callback.
func (s *SyncService) report(err error) {
	s.logger.Warnf(providers.TypeSync, "sync failure (%s): %v", transport.Kind(err), err)
	if s.onFailure != nil {
		s.onFailure(err)
	}
}

func (s *SyncService) evaluateBanner(trigger banner.Trigger) {
	snap := s.snapshot.Load()
	s.banner.Evaluate(banner.Inputs{
		Desire:        s.desire.Load(),
		Available:     snap.HasSurveysAvailable(),
		ContentActive: s.contentActive.Load(),
		HasText:       snap.Text != nil,
	}, trigger)
}

func (s *SyncService) SetBannerDesire(desire bool) {
	s.desire.Store(desire)
	s.loop.Post(func() { s.evaluateBanner(banner.TriggerDesire) })
}

func (s *SyncService) BannerDesire() bool {
	return s.desire.Load()
}

func (s *SyncService) BannerState() banner.State {
	return s.banner.State()
}

func (s *SyncService) SetStyle(style settings.Style) {
	s.loop.Post(func() {
		s.store.SetStyle(style)
		s.evaluateBanner(banner.TriggerStyle)
	})
}

func (s *SyncService) SetScreen(device models.DeviceMetrics) {
	s.loop.Post(func() {
		s.store.SetDevice(device)
		s.evaluateBanner(banner.TriggerLayout)
	})
}

func (s *SyncService) ClearAssetCache() {
	s.loop.Post(s.fetcher.Clear)
}

func (s *SyncService) OpenSurveyList() ContentRequest {
	req := newContentRequest(observers.ContentSurveyList, transport.SurveyListURL(s.store.Load(), ""), false)
	s.loop.Post(func() { s.openContent(req) })
	return req
}

// OpenSurvey opens one survey. Surveys flagged to open externally are
// handed to the system browser and leave the viewer inactive.
func (s *SyncService) OpenSurvey(id string) ContentRequest {
	offer, _ := s.Snapshot().Find(id)
	req := newContentRequest(observers.ContentSingleSurvey, transport.SurveyListURL(s.store.Load(), id), offer.OpenExternally)
	s.loop.Post(func() { s.openContent(req) })
	return req
}

func (s *SyncService) OpenHideDialog() ContentRequest {
	return newContentRequest(observers.ContentHideDialog, transport.HideDialogURL(s.store.Load()), false)
}

func (s *SyncService) OpenHelp() ContentRequest {
	return newContentRequest(observers.ContentHelp, transport.HelpURL(s.store.Load()), false)
}

func (s *SyncService) openContent(req ContentRequest) {
	if !req.External {
		s.contentActive.Store(true)
		s.contentKind = req.Kind
	}
	s.registry.PublishContentOpened(req.Kind)
	s.evaluateBanner(banner.TriggerContent)
}

// CloseContent reports that the viewer showing kind was dismissed. The hide
// dialog and help pages sit on top of the survey list and do not close it.
func (s *SyncService) CloseContent(kind observers.ContentKind) {
	if kind != observers.ContentSurveyList && kind != observers.ContentSingleSurvey {
		return
	}
	s.loop.Post(func() {
		if s.contentActive.Load() && s.contentKind == kind {
			s.contentActive.Store(false)
		}
		s.registry.PublishContentClosed(kind)
		s.evaluateBanner(banner.TriggerContent)
	})
}

func (s *SyncService) ContentActive() bool {
	return s.contentActive.Load()
}

func newContentRequest(kind observers.ContentKind, rawURL string, external bool) ContentRequest {
	return ContentRequest{Kind: kind, KindName: kind.String(), URL: rawURL, External: external}
}

// Snapshot returns the current snapshot. It must not be modified.
func (s *SyncService) Snapshot() *models.SurveySnapshot {
	return s.snapshot.Load()
}

func (s *SyncService) UnpaidTransactions() []models.Transaction {
	return s.ledger.Items()
}

func (s *SyncService) UnpaidVersion() uint64 {
	return s.ledger.Version()
}

func (s *SyncService) HasSurveysAvailable() bool {
	return s.snapshot.Load().HasSurveysAvailable()
}

func (s *SyncService) ExportState() *models.State {
	return &models.State{
		Version:  models.StateVersion,
		Snapshot: s.snapshot.Load(),
		Unpaid:   s.ledger.Items(),
		SavedAt:  time.Now().UTC(),
	}
}

// ImportState installs a restored state. It must be called before Start.
func (s *SyncService) ImportState(state *models.State) {
	if state == nil || state.Snapshot == nil {
		return
	}
	s.snapshot.Store(state.Snapshot)
	s.appliedSeq = state.Snapshot.Sequence
	s.sequence.Store(state.Snapshot.Sequence)
	s.ledger.Replace(state.Unpaid)
	s.metrics.SetSurveysAvailable(state.Snapshot.AvailableCount)
	s.metrics.SetUnpaidTransactions(s.ledger.Len())
}
