package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"surveysync/internal/models"
	"surveysync/internal/observers"
	"surveysync/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level whose format contains substr.
func (m *MockLogger) Count(level, substr string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Format, substr) {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu                 sync.Mutex
	hits               map[string]int
	misses             map[string]int
	polls              map[string]int
	Requests           int
	Stale              int
	SurveysAvailable   int
	UnpaidTransactions int
	PollingActive      bool
	BannerVisible      bool
	Persisted          int
}

func (m *MockMetrics) IncRequestsTotal(string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(string, time.Duration) {}

func (m *MockMetrics) IncCacheHits(cache string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hits == nil {
		m.hits = map[string]int{}
	}
	m.hits[cache]++
}

func (m *MockMetrics) IncCacheMisses(cache string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.misses == nil {
		m.misses = map[string]int{}
	}
	m.misses[cache]++
}

func (m *MockMetrics) IncPolls(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.polls == nil {
		m.polls = map[string]int{}
	}
	m.polls[result]++
}

func (m *MockMetrics) ObservePollDuration(time.Duration) {}

func (m *MockMetrics) IncStaleResponses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stale++
}

func (m *MockMetrics) SetSurveysAvailable(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SurveysAvailable = count
}

func (m *MockMetrics) SetUnpaidTransactions(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnpaidTransactions = count
}

func (m *MockMetrics) SetPollingActive(active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PollingActive = active
}

func (m *MockMetrics) SetBannerVisible(visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BannerVisible = visible
}

func (m *MockMetrics) ObservePersistenceDuration(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persisted++
}

func (m *MockMetrics) CacheHits(cache string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits[cache]
}

func (m *MockMetrics) CacheMisses(cache string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.misses[cache]
}

func (m *MockMetrics) Polls(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.polls[result]
}

func (m *MockMetrics) StaleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Stale
}

// MockClient implements transport.ClientInterface. SurveyFn, when set, takes
// precedence over Survey/SurveyErr. ImageGate, when set, holds every image
// fetch until it is closed.
type MockClient struct {
	mu         sync.Mutex
	SurveyFn   func(ctx context.Context, rawURL string) (*models.SurveyResponse, error)
	Survey     *models.SurveyResponse
	SurveyErr  error
	Image      *models.Asset
	ImageErr   error
	ImageGate  chan struct{}
	surveyURLs []string
	imageURLs  []string
}

func (m *MockClient) FetchSurveys(ctx context.Context, rawURL string) (*models.SurveyResponse, error) {
	m.mu.Lock()
	m.surveyURLs = append(m.surveyURLs, rawURL)
	fn, resp, err := m.SurveyFn, m.Survey, m.SurveyErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, rawURL)
	}
	return resp, err
}

func (m *MockClient) FetchImage(ctx context.Context, rawURL string) (*models.Asset, error) {
	m.mu.Lock()
	m.imageURLs = append(m.imageURLs, rawURL)
	gate, asset, err := m.ImageGate, m.Image, m.ImageErr
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return asset, err
}

func (m *MockClient) SetSurvey(resp *models.SurveyResponse, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Survey, m.SurveyErr = resp, err
}

func (m *MockClient) SetImage(asset *models.Asset, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Image, m.ImageErr = asset, err
}

func (m *MockClient) SurveyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.surveyURLs)
}

func (m *MockClient) SurveyURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.surveyURLs...)
}

func (m *MockClient) ImageCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.imageURLs)
}

func (m *MockClient) ImageURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.imageURLs...)
}

// RecordingObserver keeps every event it receives.
type RecordingObserver struct {
	observers.BaseObserver
	mu           sync.Mutex
	Surveys      []models.SurveysChange
	Transactions [][]models.Transaction
	Opened       []observers.ContentKind
	Closed       []observers.ContentKind
}

func (r *RecordingObserver) OnSurveysChanged(change models.SurveysChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Surveys = append(r.Surveys, change)
}

func (r *RecordingObserver) OnTransactionsChanged(unpaid []models.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Transactions = append(r.Transactions, unpaid)
}

func (r *RecordingObserver) OnContentOpened(kind observers.ContentKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Opened = append(r.Opened, kind)
}

func (r *RecordingObserver) OnContentClosed(kind observers.ContentKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Closed = append(r.Closed, kind)
}

func (r *RecordingObserver) SurveyEvents() []models.SurveysChange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.SurveysChange(nil), r.Surveys...)
}

func (r *RecordingObserver) TransactionEvents() [][]models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]models.Transaction(nil), r.Transactions...)
}

func (r *RecordingObserver) OpenedEvents() []observers.ContentKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]observers.ContentKind(nil), r.Opened...)
}

func (r *RecordingObserver) ClosedEvents() []observers.ContentKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]observers.ContentKind(nil), r.Closed...)
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.Data)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       int
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed++ }
