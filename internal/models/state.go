package models

import "time"

const StateVersion = 1

// State is what survives a restart: the last applied snapshot and the
// unpaid ledger.
type State struct {
	Version  int             `json:"version"`
	Snapshot *SurveySnapshot `json:"snapshot"`
	Unpaid   []Transaction   `json:"unpaid_transactions"`
	SavedAt  time.Time       `json:"saved_at"`
}
