package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"surveysync/internal/services"
)

type HealthController struct {
	service   services.SyncServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status             string  `json:"status"`
	Uptime             string  `json:"uptime"`
	UptimeSeconds      float64 `json:"uptime_seconds"`
	PollingActive      bool    `json:"polling_active"`
	SnapshotSequence   uint64  `json:"snapshot_sequence"`
	SurveysAvailable   bool    `json:"surveys_available"`
	UnpaidTransactions int     `json:"unpaid_transactions"`
	Banner             string  `json:"banner"`
	ContentActive      bool    `json:"content_active"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:             "ok",
		Uptime:             formatDuration(uptime),
		UptimeSeconds:      uptime.Seconds(),
		PollingActive:      hc.service.PollingActive(),
		SnapshotSequence:   hc.service.Snapshot().Sequence,
		SurveysAvailable:   hc.service.HasSurveysAvailable(),
		UnpaidTransactions: len(hc.service.UnpaidTransactions()),
		Banner:             hc.service.BannerState().String(),
		ContentActive:      hc.service.ContentActive(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.SyncServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
