package models

import "time"

// SurveySnapshot is the complete result of one successful poll. It is
// replaced as a whole and never modified once published.
type SurveySnapshot struct {
	Sequence       uint64        `json:"sequence"`
	Status         string        `json:"status"`
	AvailableCount int           `json:"count_available_surveys"`
	ReturnedCount  int           `json:"count_returned_surveys"`
	Offers         []SurveyOffer `json:"surveys"`
	Text           *TextBundle   `json:"text,omitempty"`
	ReceivedAt     time.Time     `json:"received_at"`
}

// EmptySnapshot is the state before the first successful poll.
func EmptySnapshot() *SurveySnapshot {
	return &SurveySnapshot{Offers: []SurveyOffer{}}
}

func (s *SurveySnapshot) HasSurveysAvailable() bool {
	return s != nil && s.AvailableCount > 0
}

func (s *SurveySnapshot) Find(id string) (SurveyOffer, bool) {
	if s == nil {
		return SurveyOffer{}, false
	}
	for _, o := range s.Offers {
		if o.ID == id {
			return o, true
		}
	}
	return SurveyOffer{}, false
}
