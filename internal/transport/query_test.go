package transport

import (
	"net/url"
	"strconv"
	"testing"

	"surveysync/internal/models"
	"surveysync/internal/settings"
	"surveysync/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testValues() *settings.Values {
	return &settings.Values{
		Account: structures.Account{
			AppID:     "1234",
			ExtUserID: "user-42",
			Email:     "u@example.com",
			SubID1:    "a",
		},
		Style: settings.Style{
			Position:        models.Side(models.AnchorRight, models.SideNormal),
			Text:            "Earn",
			TextSize:        20,
			TextColor:       "#ffffff",
			BackgroundColor: "ffaf20",
			RoundedCorners:  true,
		},
		Endpoints: structures.Endpoints{
			SurveyAPI:  "https://api.example.com/get-surveys.php",
			SurveyList: "https://offers.example.com/index.php",
			Image:      "https://img.example.com/image",
		},
		Device: models.DeviceMetrics{Width: 390, Height: 844, Scale: 2},
	}
}

func parse(t *testing.T, raw string) (*url.URL, url.Values) {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u, u.Query()
}

func TestBaseQuery(t *testing.T) {
	q := BaseQuery(testValues())

	assert.Equal(t, "1234", q.Get(ParamAppID))
	assert.Equal(t, "user-42", q.Get(ParamExtUserID))
	assert.Equal(t, "u@example.com", q.Get(ParamEmail))
	assert.Equal(t, "a", q.Get(ParamSubID1))
	assert.False(t, q.Has(ParamSubID2))
	assert.Equal(t, "side", q.Get(ParamType))
	assert.Equal(t, "right", q.Get(ParamPosition))
	assert.Equal(t, ".ffffff", q.Get(ParamTextColor))
	assert.Equal(t, ".ffaf20", q.Get(ParamBackgroundColor))
	assert.Equal(t, "true", q.Get(ParamRoundedCorners))
	assert.Equal(t, "120", q.Get(ParamWidth))
	assert.Equal(t, "800", q.Get(ParamHeight))
	assert.Equal(t, "40", q.Get(ParamTextSize))
	assert.Equal(t, "Earn", q.Get(ParamText))
	assert.False(t, q.Has(ParamOutputMethod))
}

func TestBaseQuery_ExtraInfoCapped(t *testing.T) {
	v := testValues()
	for i := 0; i < 12; i++ {
		v.Account.ExtraInfo = append(v.Account.ExtraInfo, "info"+strconv.Itoa(i))
	}

	q := BaseQuery(v)

	assert.Equal(t, "info0", q.Get(ParamExtraInfo+"1"))
	assert.Equal(t, "info9", q.Get(ParamExtraInfo+"10"))
	assert.False(t, q.Has(ParamExtraInfo+"11"))
}

func TestSurveyURL_MergesExtra(t *testing.T) {
	extra := url.Values{}
	extra.Set(ParamSecureHash, "abc")
	extra.Set(ParamShowUnpaidTransactions, "true")

	u, q := parse(t, SurveyURL(testValues(), extra))

	assert.Equal(t, "api.example.com", u.Host)
	assert.Equal(t, "/get-surveys.php", u.Path)
	assert.Equal(t, OutputMethod, q.Get(ParamOutputMethod))
	assert.Equal(t, "abc", q.Get(ParamSecureHash))
	assert.Equal(t, "true", q.Get(ParamShowUnpaidTransactions))
	assert.Equal(t, "1234", q.Get(ParamAppID))
}

func TestImageURL_StableForSameValues(t *testing.T) {
	a := ImageURL(testValues())
	b := ImageURL(testValues())
	assert.Equal(t, a, b)

	v := testValues()
	v.Style.Position = models.Corner(models.AnchorTopLeft)
	assert.NotEqual(t, a, ImageURL(v))

	u, _ := parse(t, a)
	assert.Equal(t, "img.example.com", u.Host)
}

func TestViewerURLs(t *testing.T) {
	v := testValues()

	_, list := parse(t, SurveyListURL(v, ""))
	assert.Equal(t, "true", list.Get(ParamNoClose))
	assert.False(t, list.Has(ParamSurveyID))

	_, single := parse(t, SurveyListURL(v, "s9"))
	assert.Equal(t, "s9", single.Get(ParamSurveyID))

	_, hide := parse(t, HideDialogURL(v))
	assert.Equal(t, "settings-webview", hide.Get(ParamSite))

	_, help := parse(t, HelpURL(v))
	assert.Equal(t, "help", help.Get(ParamSite))
}
