package settings

import (
	"testing"

	"surveysync/internal/models"
	"surveysync/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *structures.Config {
	return &structures.Config{
		Account: structures.Account{
			AppID:     "1",
			ExtUserID: "user",
			ExtraInfo: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"},
		},
		Style: structures.Style{
			Position:        structures.PositionConfig{Type: "corner", Anchor: "topright"},
			TextColor:       "#ffffff",
			BackgroundColor: "#000000",
		},
		Screen: structures.ScreenConfig{Width: 390, Height: 844, Scale: 3},
	}
}

func TestNewStore_CapsExtraInfo(t *testing.T) {
	s, err := NewStore(testConfig())
	require.NoError(t, err)
	assert.Len(t, s.Load().Account.ExtraInfo, structures.MaxExtraInfo)
}

func TestNewStore_DefaultTextSize(t *testing.T) {
	s, err := NewStore(testConfig())
	require.NoError(t, err)
	assert.Equal(t, structures.DefaultTextSize, s.Load().Style.TextSize)
	assert.Equal(t, models.Corner(models.AnchorTopRight), s.Load().Style.Position)
}

func TestNewStore_InvalidPosition(t *testing.T) {
	conf := testConfig()
	conf.Style.Position = structures.PositionConfig{Type: "side", Anchor: "top"}
	_, err := NewStore(conf)
	assert.Error(t, err)
}

func TestSetStyle_ReplacesSnapshot(t *testing.T) {
	s, err := NewStore(testConfig())
	require.NoError(t, err)
	before := s.Load()

	style := before.Style
	style.Position = models.Screen(models.AnchorBottom)
	s.SetStyle(style)

	assert.Equal(t, models.Corner(models.AnchorTopRight), before.Style.Position, "old snapshot must stay untouched")
	assert.Equal(t, models.Screen(models.AnchorBottom), s.Load().Style.Position)
}

func TestSetDevice_DefaultsScale(t *testing.T) {
	s, err := NewStore(testConfig())
	require.NoError(t, err)
	s.SetDevice(models.DeviceMetrics{Width: 844, Height: 390})
	assert.Equal(t, 1, s.Load().Device.Scale)
	assert.Equal(t, 844.0, s.Load().Device.Width)
}
