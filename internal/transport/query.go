package transport

import (
	"net/url"
	"strconv"
	"strings"

	"surveysync/internal/settings"
)

// Query parameter names understood by the survey service.
const (
	ParamAppID                  = "app_id"
	ParamExtUserID              = "ext_user_id"
	ParamEmail                  = "email"
	ParamSubID1                 = "subid1"
	ParamSubID2                 = "subid2"
	ParamExtraInfo              = "extra_info_"
	ParamOutputMethod           = "output_method"
	ParamShowUnpaidTransactions = "show_unpaid_transactions"
	ParamTransactionMode        = "transaction_mode"
	ParamSetTransactionPaid     = "transaction_set_paid"
	ParamMessageID              = "cpx_message_id"
	ParamSecureHash             = "secure_hash"
	ParamNoClose                = "no_close"
	ParamSite                   = "site"
	ParamBackgroundColor        = "backgroundcolor"
	ParamTextColor              = "textcolor"
	ParamType                   = "type"
	ParamRoundedCorners         = "rounded_corners"
	ParamPosition               = "position"
	ParamSurveyID               = "survey_id"
	ParamWidth                  = "width"
	ParamHeight                 = "height"
	ParamEmptyColor             = "emptycolor"
	ParamTransparent            = "transparent"
	ParamText                   = "text"
	ParamTextSize               = "textsize"

	OutputMethod = "jsscriptv1"
)

// BaseQuery returns the account and styling parameters sent with every request.
func BaseQuery(v *settings.Values) url.Values {
	scale := v.Device.Scale
	if scale <= 0 {
		scale = 1
	}
	style := v.Style

	q := url.Values{}
	q.Set(ParamAppID, v.Account.AppID)
	q.Set(ParamExtUserID, v.Account.ExtUserID)
	q.Set(ParamType, string(style.Position.Kind))
	q.Set(ParamPosition, style.Position.Anchor)
	q.Set(ParamBackgroundColor, withLeadingDot(style.BackgroundColor))
	q.Set(ParamTextColor, withLeadingDot(style.TextColor))
	q.Set(ParamRoundedCorners, strconv.FormatBool(style.RoundedCorners))
	q.Set(ParamWidth, strconv.Itoa(style.Position.Width()*scale))
	q.Set(ParamHeight, strconv.Itoa(style.Position.Height()*scale))
	q.Set(ParamEmptyColor, "")
	q.Set(ParamTransparent, "1")
	q.Set(ParamText, style.Text)
	q.Set(ParamTextSize, strconv.Itoa(style.TextSize*scale))

	if v.Account.Email != "" {
		q.Set(ParamEmail, v.Account.Email)
	}
	if v.Account.SubID1 != "" {
		q.Set(ParamSubID1, v.Account.SubID1)
	}
	if v.Account.SubID2 != "" {
		q.Set(ParamSubID2, v.Account.SubID2)
	}
	for i, info := range v.Account.ExtraInfo {
		if i >= 10 {
			break
		}
		q.Set(ParamExtraInfo+strconv.Itoa(i+1), info)
	}
	return q
}

// SurveyQuery is the survey API query: base parameters, output format and the
// per-request flags in extra.
func SurveyQuery(v *settings.Values, extra url.Values) url.Values {
	q := BaseQuery(v)
	q.Set(ParamOutputMethod, OutputMethod)
	for k, vals := range extra {
		q[k] = append([]string(nil), vals...)
	}
	return q
}

// ImageURL is the banner image request URL. It doubles as the asset cache key.
func ImageURL(v *settings.Values) string {
	return buildURL(v.Endpoints.Image, BaseQuery(v))
}

// SurveyListURL opens the embedded survey wall, or a single survey when surveyID is set.
func SurveyListURL(v *settings.Values, surveyID string) string {
	q := BaseQuery(v)
	q.Set(ParamNoClose, "true")
	if surveyID != "" {
		q.Set(ParamSurveyID, surveyID)
	}
	return buildURL(v.Endpoints.SurveyList, q)
}

func HideDialogURL(v *settings.Values) string {
	q := BaseQuery(v)
	q.Set(ParamNoClose, "true")
	q.Set(ParamSite, "settings-webview")
	return buildURL(v.Endpoints.SurveyList, q)
}

func HelpURL(v *settings.Values) string {
	q := BaseQuery(v)
	q.Set(ParamNoClose, "true")
	q.Set(ParamSite, "help")
	return buildURL(v.Endpoints.SurveyList, q)
}

func buildURL(base string, q url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + q.Encode()
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// withLeadingDot turns "#ff0000" or "ff0000" into ".ff0000", the colour
// notation the image service expects.
func withLeadingDot(color string) string {
	return "." + strings.TrimPrefix(color, "#")
}

// SurveyURL is the full survey API request URL.
func SurveyURL(v *settings.Values, extra url.Values) string {
	return buildURL(v.Endpoints.SurveyAPI, SurveyQuery(v, extra))
}
