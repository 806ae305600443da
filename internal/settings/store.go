package settings

import (
	"go.uber.org/atomic"

	"surveysync/internal/models"
	"surveysync/internal/structures"
)

type Style struct {
	Position        models.Position `json:"position"`
	Text            string          `json:"text"`
	TextSize        int             `json:"text_size"`
	TextColor       string          `json:"text_color"`
	BackgroundColor string          `json:"background_color"`
	RoundedCorners  bool            `json:"rounded_corners"`
}

// Values is one immutable configuration snapshot. Every outbound request is
// built from exactly one Values.
type Values struct {
	Account   structures.Account
	Style     Style
	Endpoints structures.Endpoints
	Device    models.DeviceMetrics
}

type StoreInterface interface {
	Load() *Values
	SetStyle(style Style)
	SetDevice(device models.DeviceMetrics)
}

// Store publishes configuration snapshots. Updates replace the snapshot,
// they never modify one that was already handed out.
type Store struct {
	current atomic.Pointer[Values]
}

func NewStore(conf *structures.Config) (StoreInterface, error) {
	style, err := StyleFromConfig(conf.Style)
	if err != nil {
		return nil, err
	}
	account := conf.Account
	if len(account.ExtraInfo) > structures.MaxExtraInfo {
		account.ExtraInfo = account.ExtraInfo[:structures.MaxExtraInfo]
	}
	s := &Store{}
	s.current.Store(&Values{
		Account:   account,
		Style:     style,
		Endpoints: conf.Endpoints,
		Device:    models.DeviceMetricsFromConfig(conf.Screen),
	})
	return s, nil
}

func StyleFromConfig(c structures.Style) (Style, error) {
	pos, err := models.ParsePosition(c.Position)
	if err != nil {
		return Style{}, err
	}
	textSize := c.TextSize
	if textSize <= 0 {
		textSize = structures.DefaultTextSize
	}
	return Style{
		Position:        pos,
		Text:            c.Text,
		TextSize:        textSize,
		TextColor:       c.TextColor,
		BackgroundColor: c.BackgroundColor,
		RoundedCorners:  c.RoundedCorners,
	}, nil
}

func (s *Store) Load() *Values {
	return s.current.Load()
}

func (s *Store) SetStyle(style Style) {
	next := *s.current.Load()
	next.Style = style
	s.current.Store(&next)
}

func (s *Store) SetDevice(device models.DeviceMetrics) {
	if device.Scale <= 0 {
		device.Scale = 1
	}
	next := *s.current.Load()
	next.Device = device
	s.current.Store(&next)
}
