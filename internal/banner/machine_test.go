package banner

import (
	"errors"
	"fmt"
	"testing"

	"surveysync/internal/assets"
	"surveysync/internal/models"
	"surveysync/internal/settings"
	"surveysync/internal/structures"
	"surveysync/internal/testutil"
	"surveysync/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImages struct {
	asset    *models.Asset
	err      error
	deferred bool
	pending  []func()
	keys     []string
}

func (f *fakeImages) Request(key string, cb assets.Callback) {
	f.keys = append(f.keys, key)
	asset, err := f.asset, f.err
	if f.deferred {
		f.pending = append(f.pending, func() { cb(asset, err) })
		return
	}
	cb(asset, err)
}

func (f *fakeImages) resolveAll() {
	pending := f.pending
	f.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func testStore(t *testing.T) settings.StoreInterface {
	t.Helper()
	store, err := settings.NewStore(&structures.Config{
		Style: structures.Style{
			Position:        structures.PositionConfig{Type: "corner", Anchor: "bottomright"},
			Text:            "Earn rewards",
			TextColor:       "#ffffff",
			BackgroundColor: "#ffaf20",
		},
		Endpoints: structures.Endpoints{Image: "https://img.example.com/banner"},
		Screen:    structures.ScreenConfig{Width: 400, Height: 800, Scale: 2},
	})
	require.NoError(t, err)
	return store
}

type fixture struct {
	machine   *Machine
	presenter *StatePresenter
	images    *fakeImages
	metrics   *testutil.MockMetrics
	store     settings.StoreInterface
	failures  []error
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		presenter: NewStatePresenter(),
		images:    &fakeImages{asset: &models.Asset{Data: []byte("\x89PNG"), Mime: "image/png"}},
		metrics:   &testutil.MockMetrics{},
		store:     testStore(t),
	}
	f.machine = NewMachine(f.presenter, f.images, f.store, f.metrics, &testutil.MockLogger{})
	f.machine.SetFailureHandler(func(err error) { f.failures = append(f.failures, err) })
	return f
}

var showable = Inputs{Desire: true, Available: true, ContentActive: false, HasText: true}

func TestInputs_EffectiveTruthTable(t *testing.T) {
	for _, desire := range []bool{true, false} {
		for _, available := range []bool{true, false} {
			for _, active := range []bool{true, false} {
				name := fmt.Sprintf("desire=%v/available=%v/content=%v", desire, available, active)
				t.Run(name, func(t *testing.T) {
					in := Inputs{Desire: desire, Available: available, ContentActive: active, HasText: true}
					assert.Equal(t, desire && available && !active, in.Effective())

					f := newFixture(t)
					f.machine.Evaluate(in, TriggerPoll)
					assert.Equal(t, in.Effective(), f.machine.State() == Visible)
				})
			}
		}
	}
}

func TestMachine_InitiallyHidden(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, Hidden, f.machine.State())
	_, mounted := f.presenter.Current()
	assert.False(t, mounted)
}

func TestMachine_NoTextKeepsHidden(t *testing.T) {
	f := newFixture(t)
	in := showable
	in.HasText = false

	f.machine.Evaluate(in, TriggerPoll)

	assert.Equal(t, Hidden, f.machine.State())
	assert.Empty(t, f.images.keys)
}

func TestMachine_EnterMountsWithImage(t *testing.T) {
	f := newFixture(t)

	f.machine.Evaluate(showable, TriggerPoll)

	assert.Equal(t, Visible, f.machine.State())
	mount, ok := f.presenter.Current()
	require.True(t, ok)
	require.NotNil(t, mount.Asset)
	assert.Equal(t, models.MimePNG, mount.Asset.MimeType())
	assert.Equal(t, "Earn rewards", mount.Text)
	assert.Equal(t, models.Frame{X: 240, Y: 640, Width: 160, Height: 160}, mount.Frame)
	require.Len(t, f.images.keys, 1)
	assert.Contains(t, f.images.keys[0], "https://img.example.com/banner?")
	assert.Equal(t, f.images.keys[0], mount.ImageURL)
	assert.True(t, f.metrics.BannerVisible)
}

func TestMachine_RepeatedEvaluationDoesNotRemount(t *testing.T) {
	f := newFixture(t)

	f.machine.Evaluate(showable, TriggerPoll)
	f.machine.Evaluate(showable, TriggerPoll)
	f.machine.Evaluate(showable, TriggerDesire)

	mounts, unmounts := f.presenter.Counts()
	assert.Equal(t, 1, mounts)
	assert.Equal(t, 0, unmounts)
	assert.Len(t, f.images.keys, 1)
}

func TestMachine_LeavesVisible(t *testing.T) {
	cases := map[string]func(in *Inputs){
		"desire off":     func(in *Inputs) { in.Desire = false },
		"none available": func(in *Inputs) { in.Available = false },
		"content active": func(in *Inputs) { in.ContentActive = true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.machine.Evaluate(showable, TriggerPoll)
			require.Equal(t, Visible, f.machine.State())

			in := showable
			mutate(&in)
			f.machine.Evaluate(in, TriggerContent)

			assert.Equal(t, Hidden, f.machine.State())
			_, mounted := f.presenter.Current()
			assert.False(t, mounted)
			assert.False(t, f.metrics.BannerVisible)
		})
	}
}

func TestMachine_StyleChangeTearsDownAndRemounts(t *testing.T) {
	f := newFixture(t)
	f.machine.Evaluate(showable, TriggerPoll)
	first, _ := f.presenter.Current()

	style := f.store.Load().Style
	style.Position = models.Side(models.AnchorLeft, models.SideSmall)
	f.store.SetStyle(style)
	f.machine.Evaluate(showable, TriggerStyle)

	mounts, unmounts := f.presenter.Counts()
	assert.Equal(t, 2, mounts)
	assert.Equal(t, 1, unmounts)
	second, ok := f.presenter.Current()
	require.True(t, ok)
	assert.NotEqual(t, first.ImageURL, second.ImageURL)
	assert.Equal(t, models.Frame{X: 0, Y: 200, Width: 30, Height: 400}, second.Frame)
}

func TestMachine_LayoutChangeWhileHiddenStaysHidden(t *testing.T) {
	f := newFixture(t)
	in := showable
	in.Desire = false

	f.machine.Evaluate(in, TriggerLayout)

	assert.Equal(t, Hidden, f.machine.State())
	mounts, unmounts := f.presenter.Counts()
	assert.Zero(t, mounts)
	assert.Zero(t, unmounts)
}

func TestMachine_UnknownMimeStaysVisibleWithoutImage(t *testing.T) {
	f := newFixture(t)
	f.images.asset = &models.Asset{Data: []byte{0xff, 0xd8}, Mime: "image/jpeg"}

	f.machine.Evaluate(showable, TriggerPoll)

	assert.Equal(t, Visible, f.machine.State())
	mount, ok := f.presenter.Current()
	require.True(t, ok)
	assert.Nil(t, mount.Asset)
	require.Len(t, f.failures, 1)
	assert.ErrorIs(t, f.failures[0], transport.ErrUnsupportedAsset)
}

func TestMachine_FetchFailureStaysVisibleWithoutImage(t *testing.T) {
	f := newFixture(t)
	f.images.asset = nil
	f.images.err = fmt.Errorf("%w: connection refused", transport.ErrTransport)

	f.machine.Evaluate(showable, TriggerPoll)

	assert.Equal(t, Visible, f.machine.State())
	mount, ok := f.presenter.Current()
	require.True(t, ok)
	assert.Nil(t, mount.Asset)
	require.Len(t, f.failures, 1)
	assert.True(t, errors.Is(f.failures[0], transport.ErrTransport))
}

func TestMachine_LateImageAfterTeardownIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.images.deferred = true

	f.machine.Evaluate(showable, TriggerPoll)
	in := showable
	in.ContentActive = true
	f.machine.Evaluate(in, TriggerContent)
	f.images.resolveAll()

	assert.Equal(t, Hidden, f.machine.State())
	_, mounted := f.presenter.Current()
	assert.False(t, mounted)
}

func TestMachine_StaleImageFromPreviousVisitIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.images.deferred = true

	f.machine.Evaluate(showable, TriggerPoll)
	f.machine.Evaluate(showable, TriggerStyle)
	require.Len(t, f.images.pending, 2)

	f.images.resolveAll()

	mounts, _ := f.presenter.Counts()
	assert.Equal(t, 1, mounts)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "hidden", Hidden.String())
	assert.Equal(t, "visible", Visible.String())
	assert.Equal(t, "style", TriggerStyle.String())
	assert.Equal(t, "unknown", Trigger(99).String())
}
