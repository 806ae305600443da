package structures

import "time"

const (
	DefaultSurveyAPI      = "https://live-api.cpx-research.com/api/get-surveys.php"
	DefaultSurveyList     = "https://offers.cpx-research.com/index.php"
	DefaultImage          = "https://dyn-image.cpx-research.com/image"
	DefaultPollInterval   = 60 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultTextSize       = 20
	MaxExtraInfo          = 10
)

// ApplyDefaults fills every optional value left empty by the config file.
func (c *Config) ApplyDefaults() {
	if c.Endpoints.SurveyAPI == "" {
		c.Endpoints.SurveyAPI = DefaultSurveyAPI
	}
	if c.Endpoints.SurveyList == "" {
		c.Endpoints.SurveyList = DefaultSurveyList
	}
	if c.Endpoints.Image == "" {
		c.Endpoints.Image = DefaultImage
	}
	if c.Sync.PollInterval <= 0 {
		c.Sync.PollInterval = DefaultPollInterval
	}
	if c.Sync.RequestTimeout <= 0 {
		c.Sync.RequestTimeout = DefaultRequestTimeout
	}
	if c.Style.TextSize <= 0 {
		c.Style.TextSize = DefaultTextSize
	}
	if c.Style.Position.Size == "" {
		c.Style.Position.Size = "normal"
	}
	if c.Screen.Scale <= 0 {
		c.Screen.Scale = 1
	}
	if len(c.Account.ExtraInfo) > MaxExtraInfo {
		c.Account.ExtraInfo = c.Account.ExtraInfo[:MaxExtraInfo]
	}
}
