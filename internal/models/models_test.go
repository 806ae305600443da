package models

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"surveysync/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_Decode(t *testing.T) {
	var v struct {
		A FlexInt `json:"a"`
		B FlexInt `json:"b"`
		C FlexInt `json:"c"`
		D FlexInt `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 7, "b": "12", "c": null, "d": 3.0}`), &v))
	assert.Equal(t, FlexInt(7), v.A)
	assert.Equal(t, FlexInt(12), v.B)
	assert.Equal(t, FlexInt(0), v.C)
	assert.Equal(t, FlexInt(3), v.D)

	assert.Error(t, json.Unmarshal([]byte(`{"a": "seven"}`), &v))
}

func TestFlexString_Decode(t *testing.T) {
	var v struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
		D FlexString `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": "x", "b": 42, "c": null, "d": true}`), &v))
	assert.Equal(t, FlexString("x"), v.A)
	assert.Equal(t, FlexString("42"), v.B)
	assert.Equal(t, FlexString(""), v.C)
	assert.Equal(t, FlexString("true"), v.D)
}

func TestSurveyOffer_Equal(t *testing.T) {
	one, two := FlexInt(1), FlexInt(1)
	a := SurveyOffer{ID: "s", Payout: "1", Details: &one, Additional: map[string]string{"k": "v"}}
	b := SurveyOffer{ID: "s", Payout: "1", Details: &two, Additional: map[string]string{"k": "v"}}
	assert.True(t, a.Equal(b))

	b.Payout = "2"
	assert.False(t, a.Equal(b))

	c := a
	c.Details = nil
	assert.False(t, a.Equal(c))

	d := a
	d.ID = "other"
	assert.False(t, a.Equal(d))
}

func TestLedger_ReplaceDeduplicates(t *testing.T) {
	l := NewLedger()
	l.Replace([]Transaction{{TransID: "a", Status: "1"}, {TransID: "b"}, {TransID: "a", Status: "2"}})

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, FlexString("1"), items[0].Status)
	assert.True(t, l.Contains("b"))
	assert.Equal(t, uint64(1), l.Version())
}

func TestLedger_RemoveIsIdempotent(t *testing.T) {
	l := NewLedger()
	l.Replace([]Transaction{{TransID: "a"}, {TransID: "b"}, {TransID: "c"}})

	assert.True(t, l.Remove("b"))
	once := l.Items()
	version := l.Version()

	assert.False(t, l.Remove("b"))
	assert.Equal(t, once, l.Items())
	assert.Equal(t, version, l.Version())
	assert.False(t, l.Remove("missing"))
	assert.Equal(t, 2, l.Len())
}

func TestLedger_ItemsIsACopy(t *testing.T) {
	l := NewLedger()
	l.Replace([]Transaction{{TransID: "a"}})

	items := l.Items()
	items[0].TransID = "mutated"

	assert.True(t, l.Contains("a"))
}

func TestSnapshot_Helpers(t *testing.T) {
	var nilSnap *SurveySnapshot
	assert.False(t, nilSnap.HasSurveysAvailable())
	_, ok := nilSnap.Find("x")
	assert.False(t, ok)

	empty := EmptySnapshot()
	assert.NotNil(t, empty.Offers)
	assert.False(t, empty.HasSurveysAvailable())

	resp := &SurveyResponse{Status: "success", AvailableCount: 1, ReturnedCount: 1, Surveys: []SurveyOffer{{ID: "x"}}}
	at := time.Now()
	snap := resp.ToSnapshot(3, at)
	assert.Equal(t, uint64(3), snap.Sequence)
	assert.True(t, snap.HasSurveysAvailable())
	found, ok := snap.Find("x")
	assert.True(t, ok)
	assert.Equal(t, "x", found.ID)
	assert.Equal(t, at, snap.ReceivedAt)

	noSurveys := (&SurveyResponse{}).ToSnapshot(1, at)
	assert.NotNil(t, noSurveys.Offers)
}

func TestAsset_MimeType(t *testing.T) {
	assert.Equal(t, MimePNG, (&Asset{Mime: "image/png", Data: []byte{1}}).MimeType())
	assert.Equal(t, MimeGIF, (&Asset{Mime: "image/gif", Data: []byte{1}}).MimeType())
	assert.Equal(t, MimeUnknown, (&Asset{Mime: "image/jpeg", Data: []byte{1}}).MimeType())

	var missing *Asset
	assert.Equal(t, MimeUnknown, missing.MimeType())
	assert.False(t, missing.Renderable())
	assert.False(t, (&Asset{Mime: "image/png"}).Renderable())
	assert.True(t, (&Asset{Mime: "image/gif", Data: []byte("GIF89a")}).Renderable())
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		in      structures.PositionConfig
		want    Position
		wantErr bool
	}{
		{name: "side default size", in: structures.PositionConfig{Type: "side", Anchor: "left"}, want: Side(AnchorLeft, SideNormal)},
		{name: "side small", in: structures.PositionConfig{Type: "side", Anchor: "right", Size: "small"}, want: Side(AnchorRight, SideSmall)},
		{name: "corner", in: structures.PositionConfig{Type: "corner", Anchor: "topleft"}, want: Corner(AnchorTopLeft)},
		{name: "screen", in: structures.PositionConfig{Type: "screen", Anchor: "top"}, want: Screen(AnchorTop)},
		{name: "bad side anchor", in: structures.PositionConfig{Type: "side", Anchor: "top"}, wantErr: true},
		{name: "bad side size", in: structures.PositionConfig{Type: "side", Anchor: "left", Size: "huge"}, wantErr: true},
		{name: "bad corner", in: structures.PositionConfig{Type: "corner", Anchor: "left"}, wantErr: true},
		{name: "bad screen", in: structures.PositionConfig{Type: "screen", Anchor: "middle"}, wantErr: true},
		{name: "bad type", in: structures.PositionConfig{Type: "floating", Anchor: "left"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePosition(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPosition_Frame(t *testing.T) {
	device := DeviceMetrics{Width: 400, Height: 800, Scale: 2, SafeTop: 44, SafeBottom: 34}
	tests := []struct {
		name string
		pos  Position
		want Frame
	}{
		{"side left", Side(AnchorLeft, SideNormal), Frame{X: 0, Y: 200, Width: 60, Height: 400}},
		{"side right small", Side(AnchorRight, SideSmall), Frame{X: 370, Y: 200, Width: 30, Height: 400}},
		{"corner top left", Corner(AnchorTopLeft), Frame{X: 0, Y: 0, Width: 160, Height: 160}},
		{"corner top right", Corner(AnchorTopRight), Frame{X: 240, Y: 0, Width: 160, Height: 160}},
		{"corner bottom left", Corner(AnchorBottomLeft), Frame{X: 0, Y: 640, Width: 160, Height: 160}},
		{"corner bottom right", Corner(AnchorBottomRight), Frame{X: 240, Y: 640, Width: 160, Height: 160}},
		{"screen top", Screen(AnchorTop), Frame{X: 40, Y: 44, Width: 320, Height: 72}},
		{"screen bottom", Screen(AnchorBottom), Frame{X: 40, Y: 694, Width: 320, Height: 72}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.Frame(device))
		})
	}
}

func TestDeviceMetricsFromConfig_DefaultsScale(t *testing.T) {
	d := DeviceMetricsFromConfig(structures.ScreenConfig{Width: 1, Height: 2})
	assert.Equal(t, 1, d.Scale)
}
