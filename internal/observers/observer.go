package observers

import "surveysync/internal/models"

// ContentKind identifies what the embedded content viewer shows.
type ContentKind int

const (
	ContentSurveyList ContentKind = iota
	ContentSingleSurvey
	ContentHideDialog
	ContentHelp
)

var contentKindNames = map[ContentKind]string{
	ContentSurveyList:   "survey_list",
	ContentSingleSurvey: "single_survey",
	ContentHideDialog:   "hide_dialog",
	ContentHelp:         "help",
}

func (k ContentKind) String() string {
	if name, ok := contentKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseContentKind is the inverse of String.
func ParseContentKind(s string) (ContentKind, bool) {
	for k, name := range contentKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Observer receives synchronization events. All callbacks run on the main loop.
type Observer interface {
	OnSurveysChanged(change models.SurveysChange)
	OnTransactionsChanged(unpaid []models.Transaction)
	OnContentOpened(kind ContentKind)
	OnContentClosed(kind ContentKind)
}

// BaseObserver ignores every event. Embed it to implement only the callbacks you need.
type BaseObserver struct{}

func (BaseObserver) OnSurveysChanged(models.SurveysChange)      {}
func (BaseObserver) OnTransactionsChanged([]models.Transaction) {}
func (BaseObserver) OnContentOpened(ContentKind)                {}
func (BaseObserver) OnContentClosed(ContentKind)                {}
