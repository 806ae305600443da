package controllers

import (
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/spf13/cast"

	"surveysync/internal/banner"
	"surveysync/internal/models"
	"surveysync/internal/observers"
	"surveysync/internal/postback"
	"surveysync/internal/providers"
	"surveysync/internal/services"
	"surveysync/internal/settings"
	"surveysync/internal/structures"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// BannerView exposes what the banner presenter currently shows.
type BannerView interface {
	Current() (banner.Mount, bool)
}

type ApiController struct {
	logger    providers.Logger
	service   services.SyncServiceInterface
	cache     providers.CacheProviderInterface
	validator postback.ValidatorInterface
	view      BannerView
}

type transactionsResponse struct {
	Version      uint64               `json:"version"`
	Transactions []models.Transaction `json:"transactions"`
}

type pollingResponse struct {
	Active  bool `json:"active"`
	Changed bool `json:"changed"`
}

type bannerRequest struct {
	Desire bool `json:"desire"`
}

type bannerResponse struct {
	Desire   bool          `json:"desire"`
	State    string        `json:"state"`
	Mounted  bool          `json:"mounted"`
	HasImage bool          `json:"has_image"`
	Mount    *banner.Mount `json:"mount,omitempty"`
}

type paidRequest struct {
	TransID   string `json:"trans_id" validate:"required"`
	MessageID string `json:"message_id" validate:"required"`
}

type contentRequest struct {
	Kind     string `json:"kind" validate:"required|in:survey_list,single_survey,hide_dialog,help"`
	SurveyID string `json:"survey_id"`
}

type navigationResponse struct {
	Allow    bool   `json:"allow"`
	Postback bool   `json:"postback"`
	Message  string `json:"message_id,omitempty"`
}

type positionRequest struct {
	Type   string `json:"type"`
	Anchor string `json:"anchor"`
	Size   string `json:"size"`
}

type styleRequest struct {
	Position        positionRequest `json:"position"`
	Text            string          `json:"text"`
	TextSize        int             `json:"text_size"`
	TextColor       string          `json:"text_color" validate:"required"`
	BackgroundColor string          `json:"background_color" validate:"required"`
	RoundedCorners  bool            `json:"rounded_corners"`
}

func NewApiController(logger providers.Logger, service services.SyncServiceInterface, cache providers.CacheProviderInterface, validator postback.ValidatorInterface, view BannerView) *ApiController {
	return &ApiController{
		logger:    logger,
		service:   service,
		cache:     cache,
		validator: validator,
		view:      view,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// decode reads a size-limited JSON body into dst and runs its validate tags.
func (ac *ApiController) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		ac.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "Bad request body on %s: %s", r.URL.Path, err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	v := validate.Struct(dst)
	if !v.Validate() {
		ac.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "Invalid request on %s: %s", r.URL.Path, v.Errors.One())
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

// GetSurveys returns the current snapshot. The cache key carries the
// snapshot sequence, so a newer poll never hits an older entry.
func (ac *ApiController) GetSurveys(w http.ResponseWriter, r *http.Request) {
	snapshot := ac.service.Snapshot()
	ac.serveFromCacheOrCompute(w, "surveys:"+strconv.FormatUint(snapshot.Sequence, 10), func() (any, error) {
		return snapshot, nil
	})
}

func (ac *ApiController) GetTransactions(w http.ResponseWriter, r *http.Request) {
	version := ac.service.UnpaidVersion()
	ac.serveFromCacheOrCompute(w, "transactions:"+strconv.FormatUint(version, 10), func() (any, error) {
		return transactionsResponse{Version: version, Transactions: ac.service.UnpaidTransactions()}, nil
	})
}

func (ac *ApiController) RequestUpdate(w http.ResponseWriter, r *http.Request) {
	ac.service.RequestUpdate(cast.ToBool(r.URL.Query().Get("unpaid")))
	w.WriteHeader(http.StatusAccepted)
}

func (ac *ApiController) Foreground(w http.ResponseWriter, r *http.Request) {
	ac.service.Foreground()
	w.WriteHeader(http.StatusAccepted)
}

// ActivatePolling takes an optional interval query parameter ("30s", "2m").
func (ac *ApiController) ActivatePolling(w http.ResponseWriter, r *http.Request) {
	var interval time.Duration
	if raw := r.URL.Query().Get("interval"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		interval = d
	}
	changed := ac.service.ActivateAutomaticPolling(interval)
	ac.writeJSON(w, http.StatusOK, pollingResponse{Active: ac.service.PollingActive(), Changed: changed})
}

func (ac *ApiController) DeactivatePolling(w http.ResponseWriter, r *http.Request) {
	changed := ac.service.DeactivatePolling()
	ac.writeJSON(w, http.StatusOK, pollingResponse{Active: ac.service.PollingActive(), Changed: changed})
}

func (ac *ApiController) SetBanner(w http.ResponseWriter, r *http.Request) {
	var payload bannerRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	ac.service.SetBannerDesire(payload.Desire)
	w.WriteHeader(http.StatusAccepted)
}

func (ac *ApiController) GetBanner(w http.ResponseWriter, r *http.Request) {
	resp := bannerResponse{
		Desire: ac.service.BannerDesire(),
		State:  ac.service.BannerState().String(),
	}
	if mount, ok := ac.view.Current(); ok {
		resp.Mounted = true
		resp.HasImage = mount.Asset != nil
		resp.Mount = &mount
	}
	ac.writeJSON(w, http.StatusOK, resp)
}

func (ac *ApiController) MarkTransactionPaid(w http.ResponseWriter, r *http.Request) {
	var payload paidRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	ac.service.MarkTransactionPaid(payload.TransID, payload.MessageID)
	w.WriteHeader(http.StatusAccepted)
}

// ClearCache drops downloaded banner images and every cached response.
func (ac *ApiController) ClearCache(w http.ResponseWriter, r *http.Request) {
	ac.service.ClearAssetCache()
	ac.cache.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Navigate runs a content viewer navigation through the postback validator.
// Navigation is always allowed; the response says whether it carried a postback.
func (ac *ApiController) Navigate(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	resp := navigationResponse{Allow: ac.validator.HandleNavigation(target)}
	if pb, ok := postback.Inspect(target); ok {
		resp.Postback = true
		resp.Message = pb.MessageID
	}
	ac.writeJSON(w, http.StatusOK, resp)
}

func (ac *ApiController) OpenContent(w http.ResponseWriter, r *http.Request) {
	var payload contentRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	kind, _ := observers.ParseContentKind(payload.Kind)

	var req services.ContentRequest
	switch kind {
	case observers.ContentSurveyList:
		req = ac.service.OpenSurveyList()
	case observers.ContentSingleSurvey:
		if payload.SurveyID == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		req = ac.service.OpenSurvey(payload.SurveyID)
	case observers.ContentHideDialog:
		req = ac.service.OpenHideDialog()
	case observers.ContentHelp:
		req = ac.service.OpenHelp()
	}
	ac.writeJSON(w, http.StatusOK, req)
}

func (ac *ApiController) CloseContent(w http.ResponseWriter, r *http.Request) {
	var payload contentRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	kind, _ := observers.ParseContentKind(payload.Kind)
	ac.service.CloseContent(kind)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) SetScreen(w http.ResponseWriter, r *http.Request) {
	var payload models.DeviceMetrics
	if !ac.decode(w, r, &payload) {
		return
	}
	if payload.Width <= 0 || payload.Height <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Scale <= 0 {
		payload.Scale = 1
	}
	ac.service.SetScreen(payload)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) SetStyle(w http.ResponseWriter, r *http.Request) {
	var payload styleRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	style, err := settings.StyleFromConfig(structures.Style{
		Position: structures.PositionConfig{
			Type:   payload.Position.Type,
			Anchor: payload.Position.Anchor,
			Size:   payload.Position.Size,
		},
		Text:            payload.Text,
		TextSize:        payload.TextSize,
		TextColor:       payload.TextColor,
		BackgroundColor: payload.BackgroundColor,
		RoundedCorners:  payload.RoundedCorners,
	})
	if err != nil {
		ac.logger.Debugf(providers.TypePost, "Rejected style: %s", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.service.SetStyle(style)
	w.WriteHeader(http.StatusNoContent)
}
