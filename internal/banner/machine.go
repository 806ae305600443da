// Package banner decides whether the notification banner is mounted.
package banner

import (
	"fmt"

	"go.uber.org/atomic"

	"surveysync/internal/assets"
	"surveysync/internal/models"
	"surveysync/internal/providers"
	"surveysync/internal/settings"
	"surveysync/internal/transport"
)

type State int32

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Trigger names the signal that caused a re-evaluation.
type Trigger int

const (
	TriggerPoll Trigger = iota
	TriggerDesire
	TriggerContent
	TriggerLayout
	TriggerStyle
)

var triggerNames = [...]string{"poll", "desire", "content", "layout", "style"}

func (t Trigger) String() string {
	if int(t) < len(triggerNames) {
		return triggerNames[t]
	}
	return "unknown"
}

// Inputs are the facts the machine decides on.
type Inputs struct {
	Desire        bool
	Available     bool
	ContentActive bool
	HasText       bool
}

// Effective is the host-visible banner visibility.
func (in Inputs) Effective() bool {
	return in.Desire && in.Available && !in.ContentActive
}

// Mount describes a banner to put on screen. Asset is nil when the image
// could not be fetched or is not a renderable type.
type Mount struct {
	Frame           models.Frame    `json:"frame"`
	Position        models.Position `json:"position"`
	Text            string          `json:"text"`
	TextColor       string          `json:"text_color"`
	BackgroundColor string          `json:"background_color"`
	ImageURL        string          `json:"image_url"`
	Asset           *models.Asset   `json:"-"`
}

type Presenter interface {
	Mount(m Mount)
	Unmount()
}

type ImageSource interface {
	Request(key string, cb assets.Callback)
}

// Machine must be driven from the main loop. State may be read from anywhere.
type Machine struct {
	state     atomic.Int32
	gen       uint64
	presenter Presenter
	images    ImageSource
	settings  settings.StoreInterface
	metrics   providers.MetricsProviderInterface
	logger    providers.Logger
	onFailure func(error)
}

func NewMachine(presenter Presenter, images ImageSource, store settings.StoreInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) *Machine {
	return &Machine{
		presenter: presenter,
		images:    images,
		settings:  store,
		metrics:   metrics,
		logger:    logger,
	}
}

// SetFailureHandler receives image failures. Call before the first Evaluate.
func (m *Machine) SetFailureHandler(fn func(error)) {
	m.onFailure = fn
}

func (m *Machine) State() State {
	return State(m.state.Load())
}

// Evaluate applies one re-evaluation. A style or layout change tears a
// visible banner down before deciding again, so it comes back with the new
// placement and image.
func (m *Machine) Evaluate(in Inputs, trigger Trigger) {
	if m.State() == Visible && (trigger == TriggerStyle || trigger == TriggerLayout) {
		m.teardown(trigger)
	}

	want := in.Effective() && in.HasText
	switch m.State() {
	case Visible:
		if !want {
			m.teardown(trigger)
		}
	case Hidden:
		if want {
			m.enter(trigger)
		}
	}
}

func (m *Machine) enter(trigger Trigger) {
	m.gen++
	gen := m.gen
	m.setState(Visible)

	values := m.settings.Load()
	key := transport.ImageURL(values)
	mount := Mount{
		Frame:           values.Style.Position.Frame(values.Device),
		Position:        values.Style.Position,
		Text:            values.Style.Text,
		TextColor:       values.Style.TextColor,
		BackgroundColor: values.Style.BackgroundColor,
		ImageURL:        key,
	}
	m.logger.Debugf(providers.TypeSync, "banner visible (%s), requesting image", trigger)

	m.images.Request(key, func(asset *models.Asset, err error) {
		if m.State() != Visible || m.gen != gen {
			return
		}
		if err == nil && !asset.Renderable() {
			err = fmt.Errorf("%w: %s", transport.ErrUnsupportedAsset, asset.MimeType())
		}
		if err != nil {
			m.logger.Warnf(providers.TypeSync, "banner image unavailable: %v", err)
			if m.onFailure != nil {
				m.onFailure(err)
			}
			asset = nil
		}
		mount.Asset = asset
		m.presenter.Mount(mount)
	})
}

func (m *Machine) teardown(trigger Trigger) {
	m.gen++
	m.setState(Hidden)
	m.presenter.Unmount()
	m.logger.Debugf(providers.TypeSync, "banner hidden (%s)", trigger)
}

func (m *Machine) setState(s State) {
	m.state.Store(int32(s))
	m.metrics.SetBannerVisible(s == Visible)
}
