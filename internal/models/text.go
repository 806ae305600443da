package models

// TextBundle carries the user-facing labels for the current locale.
type TextBundle struct {
	IsHTML               *bool   `json:"is_html,omitempty"`
	CurrencyNamePlural   string  `json:"currency_name_plural"`
	CurrencyNameSingular string  `json:"currency_name_singular"`
	ShortcutMin          string  `json:"shortcurt_min"`
	HeadlineGeneral      string  `json:"headline_general"`
	Headline1Element1    string  `json:"headline_1_element_1"`
	Headline2Element1    string  `json:"headline_2_element_1"`
	Headline1Element2    string  `json:"headline_1_element_2"`
	Reload1ShortText     string  `json:"reload_1_short_text"`
	Reload1ShortTime     FlexInt `json:"reload_1_short_time"`
	Reload2ShortText     string  `json:"reload_2_short_text"`
	Reload2ShortTime     FlexInt `json:"reload_2_short_time"`
	Reload3ShortText     string  `json:"reload_3_short_text"`
	Reload3ShortTime     FlexInt `json:"reload_3_short_time"`
}
