package models

import "maps"

// SurveyOffer is one survey as returned by the survey API. Offers are never
// mutated after decoding; a refresh replaces them.
type SurveyOffer struct {
	ID             string            `json:"id"`
	LOI            FlexInt           `json:"loi"`
	Payout         string            `json:"payout"`
	PayoutOriginal *string           `json:"payout_original,omitempty"`
	ConversionRate FlexString        `json:"conversion_rate"`
	IsTestSurvey   *FlexInt          `json:"istestsurvey,omitempty"`
	RatingCount    FlexInt           `json:"statistics_rating_count"`
	RatingAvg      FlexInt           `json:"statistics_rating_avg"`
	Type           string            `json:"type"`
	Top            FlexInt           `json:"top"`
	Details        *FlexInt          `json:"details,omitempty"`
	EarnedAll      *FlexInt          `json:"earned_all,omitempty"`
	OpenExternally bool              `json:"open_externally"`
	Additional     map[string]string `json:"additional_parameter,omitempty"`
}

func (s SurveyOffer) IsPriority() bool {
	return s.Top > 0
}

// Equal compares every field, identity included.
func (s SurveyOffer) Equal(o SurveyOffer) bool {
	return s.ID == o.ID &&
		s.LOI == o.LOI &&
		s.Payout == o.Payout &&
		equalPtr(s.PayoutOriginal, o.PayoutOriginal) &&
		s.ConversionRate == o.ConversionRate &&
		equalPtr(s.IsTestSurvey, o.IsTestSurvey) &&
		s.RatingCount == o.RatingCount &&
		s.RatingAvg == o.RatingAvg &&
		s.Type == o.Type &&
		s.Top == o.Top &&
		equalPtr(s.Details, o.Details) &&
		equalPtr(s.EarnedAll, o.EarnedAll) &&
		s.OpenExternally == o.OpenExternally &&
		maps.Equal(s.Additional, o.Additional)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SurveysChange is the outcome of one reconciliation.
type SurveysChange struct {
	Added   []SurveyOffer `json:"added"`
	Updated []SurveyOffer `json:"updated"`
	Removed []SurveyOffer `json:"removed"`
}

func (c SurveysChange) Empty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}
