package models

import "time"

// StatusSuccess is the only status that carries a usable survey list.
const StatusSuccess = "success"

// SurveyResponse is the decoded body of the survey API.
type SurveyResponse struct {
	Status         string        `json:"status"`
	AvailableCount FlexInt       `json:"count_available_surveys"`
	ReturnedCount  FlexInt       `json:"count_returned_surveys"`
	Transactions   []Transaction `json:"transactions"`
	Surveys        []SurveyOffer `json:"surveys"`
	Text           *TextBundle   `json:"text"`
}

func (r *SurveyResponse) ToSnapshot(seq uint64, receivedAt time.Time) *SurveySnapshot {
	offers := r.Surveys
	if offers == nil {
		offers = []SurveyOffer{}
	}
	return &SurveySnapshot{
		Sequence:       seq,
		Status:         r.Status,
		AvailableCount: int(r.AvailableCount),
		ReturnedCount:  int(r.ReturnedCount),
		Offers:         offers,
		Text:           r.Text,
		ReceivedAt:     receivedAt,
	}
}
