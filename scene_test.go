package ornament

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.TotalCount = 200
	cfg.RibbonCount = 40
	return cfg
}

func newTestScene(t *testing.T, cfg Config) *Scene {
	t.Helper()
	s, err := NewScene(cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func snapshotTargets(g *ParticleGroup) []r3.Vector {
	out := make([]r3.Vector, g.Len())
	for i := range out {
		out[i] = g.Target(i)
	}
	return out
}

func snapshotCurrent(g *ParticleGroup) []r3.Vector {
	out := make([]r3.Vector, g.Len())
	for i := range out {
		out[i] = g.Current(i)
	}
	return out
}

func TestNewSceneGroups(t *testing.T) {
	s := newTestScene(t, DefaultConfig())
	require.Len(t, s.Groups(), 3)
	assert.Equal(t, 6375, s.Group(GroupFiller).Len())
	assert.Equal(t, 1125, s.Group(GroupOrnament).Len())
	assert.Equal(t, 400, s.Group(GroupRibbon).Len())
	assert.Equal(t, 0.05, s.Group(GroupFiller).Smoothing())
	assert.Equal(t, 0.04, s.Group(GroupRibbon).Smoothing())
	assert.Nil(t, s.Group("missing"))

	assert.Equal(t, StateAssembled, s.State())
	assert.Equal(t, DefaultHandData(), s.Hand())
	assert.False(t, s.Playing())
	for _, g := range s.Groups() {
		assert.Equal(t, StateAssembled, g.State())
	}
}

func TestNewSceneRejectsEmptyGroups(t *testing.T) {
	cfg := smallConfig()
	cfg.RibbonCount = 0
	_, err := NewScene(cfg)
	assert.ErrorIs(t, err, ErrEmptyGroup)

	cfg = smallConfig()
	cfg.TotalCount = 1
	_, err = NewScene(cfg)
	assert.ErrorIs(t, err, ErrEmptyGroup)
}

func TestToggleScenario(t *testing.T) {
	s := newTestScene(t, smallConfig())
	require.NoError(t, s.Enter(context.Background(), false))

	assembled := map[string][]r3.Vector{}
	for _, g := range s.Groups() {
		assembled[g.Name()] = snapshotTargets(g)
	}

	require.True(t, s.Toggle())
	require.Equal(t, StateScattered, s.State())

	half := map[string]float64{
		GroupFiller:   fillerScatter,
		GroupOrnament: ornamentScatter,
		GroupRibbon:   ribbonScatter,
	}
	for _, g := range s.Groups() {
		assert.Equal(t, StateScattered, g.State())
		assert.NotEqual(t, assembled[g.Name()], snapshotTargets(g), "%s targets resampled", g.Name())
		h := half[g.Name()]
		for i := 0; i < g.Len(); i++ {
			p := g.Target(i)
			require.True(t, math.Abs(p.X) <= h && math.Abs(p.Z) <= h && math.Abs(p.Y-scatterLift) <= h,
				"%s target %d = %v outside cube", g.Name(), i, p)
		}
	}

	initial := map[string][]r3.Vector{}
	for _, g := range s.Groups() {
		initial[g.Name()] = snapshotCurrent(g)
	}
	targets := map[string][]r3.Vector{}
	for _, g := range s.Groups() {
		targets[g.Name()] = snapshotTargets(g)
	}

	const ticks = 200
	for i := 0; i < ticks; i++ {
		s.Update(1.0 / 60)
	}

	for _, g := range s.Groups() {
		assert.Equal(t, targets[g.Name()], snapshotTargets(g), "targets stay fixed between transitions")
		decay := math.Pow(1-g.Smoothing(), ticks)
		for i := 0; i < g.Len(); i++ {
			want := initial[g.Name()][i].Distance(targets[g.Name()][i]) * decay
			require.InDelta(t, want, g.Current(i).Distance(g.Target(i)), 1e-9)
		}
	}
	// At alpha 0.05 the cube clouds settle within 1e-3 per axis in 200 ticks.
	// A far cube corner is still about 1.5e-3 away in Euclidean distance.
	for _, name := range []string{GroupFiller, GroupOrnament} {
		g := s.Group(name)
		for i := 0; i < g.Len(); i++ {
			d := g.Current(i).Sub(g.Target(i)).Abs()
			require.True(t, d.X < 1e-3 && d.Y < 1e-3 && d.Z < 1e-3, "%s %d gap %v", name, i, d)
		}
	}
	// The ribbon's slower alpha needs a few more ticks.
	for i := 0; i < 60; i++ {
		s.Update(1.0 / 60)
	}
	g := s.Group(GroupRibbon)
	for i := 0; i < g.Len(); i++ {
		d := g.Current(i).Sub(g.Target(i)).Abs()
		require.True(t, d.X < 1e-3 && d.Y < 1e-3 && d.Z < 1e-3, "ribbon %d gap %v", i, d)
	}
}

func TestRibbonAssembledTargetsRepeat(t *testing.T) {
	s := newTestScene(t, smallConfig())
	require.NoError(t, s.Enter(context.Background(), false))
	ribbon := s.Group(GroupRibbon)
	filler := s.Group(GroupFiller)

	first := snapshotTargets(ribbon)
	firstFiller := snapshotTargets(filler)

	require.True(t, s.Toggle())
	scattered := snapshotTargets(ribbon)
	require.True(t, s.Toggle())
	require.Equal(t, StateAssembled, s.State())

	assert.Equal(t, first, snapshotTargets(ribbon), "ribbon helix is a pure function of index")
	assert.NotEqual(t, firstFiller, snapshotTargets(filler), "cone targets are resampled")

	require.True(t, s.Toggle())
	assert.NotEqual(t, scattered, snapshotTargets(ribbon), "scattered ribbon is resampled")
}

func TestToggleRequiresEnterAndPointerMode(t *testing.T) {
	s := newTestScene(t, smallConfig())
	assert.False(t, s.Toggle(), "toggle before enter")

	cfg := smallConfig()
	cfg.PollInterval = Duration{time.Hour}
	g := newTestScene(t, cfg)
	require.NoError(t, g.Enter(context.Background(), true))
	assert.False(t, g.Toggle(), "toggle in gesture mode")
	assert.Equal(t, StateAssembled, g.State())
}

func TestSubmitLandmarks(t *testing.T) {
	cfg := smallConfig()
	cfg.PollInterval = Duration{time.Hour}
	s := newTestScene(t, cfg)

	assert.False(t, s.SubmitLandmarks(SyntheticHand(0, 0, 0.05, false)), "ignored in pointer mode")
	assert.Equal(t, DefaultHandData(), s.Hand())

	require.NoError(t, s.Enter(context.Background(), true))
	require.True(t, s.SubmitLandmarks(SyntheticHand(0, 0.5, 0.05, false)))
	h := s.Hand()
	assert.InDelta(t, 0.65, h.X, 1e-12)
	assert.True(t, h.IsPinching)
	assert.False(t, h.IsOpen)

	assert.False(t, s.SubmitLandmarks(nil), "no hand")
	assert.Equal(t, h, s.Hand(), "hand data persists while no hand is seen")
}

func TestGesturePollTransitions(t *testing.T) {
	cfg := smallConfig()
	cfg.PollInterval = Duration{time.Hour}
	s := newTestScene(t, cfg)
	require.NoError(t, s.Enter(context.Background(), true))

	// The default hand is open, so the first poll scatters.
	assert.True(t, s.Poll())
	assert.Equal(t, StateScattered, s.State())

	require.True(t, s.SubmitLandmarks(SyntheticHand(0.5, 0.5, 0.02, false)))
	fired := 0
	for i := 0; i < 3; i++ {
		if s.Poll() {
			fired++
		}
	}
	assert.Equal(t, 1, fired)
	assert.Equal(t, StateAssembled, s.State())
	for _, g := range s.Groups() {
		assert.Equal(t, StateAssembled, g.State())
	}
}

func TestBackgroundPoller(t *testing.T) {
	cfg := smallConfig()
	cfg.PollInterval = Duration{5 * time.Millisecond}
	s := newTestScene(t, cfg)
	require.NoError(t, s.Enter(context.Background(), true))

	require.Eventually(t, func() bool { return s.State() == StateScattered },
		time.Second, time.Millisecond)

	s.SubmitLandmarks(SyntheticHand(0.5, 0.5, 0.01, false))
	require.Eventually(t, func() bool { return s.State() == StateAssembled },
		time.Second, time.Millisecond)
}

func TestPollerStopsWithPointerMode(t *testing.T) {
	cfg := smallConfig()
	cfg.PollInterval = Duration{2 * time.Millisecond}
	s := newTestScene(t, cfg)
	require.NoError(t, s.Enter(context.Background(), true))
	require.NoError(t, s.SetGestureMode(context.Background(), false))

	s.mu.Lock()
	assert.Nil(t, s.poller)
	s.mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateAssembled, s.State(), "no poll after gesture mode stops")
	assert.True(t, s.Toggle())
}

func TestPollerStopsWithContext(t *testing.T) {
	cfg := smallConfig()
	cfg.PollInterval = Duration{2 * time.Millisecond}
	s := newTestScene(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Enter(ctx, true))
	require.Eventually(t, func() bool { return !s.GestureMode() },
		time.Second, time.Millisecond, "falls back to pointer mode")
	assert.Equal(t, StateAssembled, s.State())
	assert.True(t, s.Toggle())
	assert.Equal(t, StateScattered, s.State())
}

func TestPollerContextEndsWhileRunning(t *testing.T) {
	cfg := smallConfig()
	cfg.PollInterval = Duration{2 * time.Millisecond}
	s := newTestScene(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Enter(ctx, true))
	require.Eventually(t, func() bool { return s.State() == StateScattered },
		time.Second, time.Millisecond)
	require.True(t, s.GestureMode())

	cancel()
	require.Eventually(t, func() bool { return !s.GestureMode() },
		time.Second, time.Millisecond)
	s.mu.Lock()
	assert.Nil(t, s.poller)
	s.mu.Unlock()

	// A fresh gesture session starts a new poller.
	require.NoError(t, s.SetGestureMode(context.Background(), true))
	assert.True(t, s.GestureMode())
	assert.False(t, s.Toggle())
}

func TestClose(t *testing.T) {
	cfg := smallConfig()
	cfg.PollInterval = Duration{time.Millisecond}
	s := newTestScene(t, cfg)
	require.NoError(t, s.Enter(context.Background(), true))
	s.Close()
	s.Close()

	frames := s.Frames()
	s.Update(1.0 / 60)
	assert.Equal(t, frames, s.Frames())
	assert.False(t, s.Poll())
	assert.False(t, s.SubmitLandmarks(SyntheticHand(0.5, 0.5, 0.01, false)))
	assert.ErrorIs(t, s.Enter(context.Background(), false), ErrClosed)
	assert.ErrorIs(t, s.SetGestureMode(context.Background(), false), ErrClosed)
}

func TestSteerOnlyWhenGestureAndScattered(t *testing.T) {
	cfg := smallConfig()
	cfg.PollInterval = Duration{time.Hour}
	s := newTestScene(t, cfg)
	require.NoError(t, s.Enter(context.Background(), true))

	// Assembled: idle spin.
	s.Update(1)
	assert.InDelta(t, DefaultSpinRate, s.Engine().Spin(), 1e-12)

	require.True(t, s.Poll())
	require.Equal(t, StateScattered, s.State())
	s.Update(1)
	// Hand x 0.5 steers toward zero.
	assert.InDelta(t, DefaultSpinRate*0.9, s.Engine().Spin(), 1e-12)
}

type recordingStore struct {
	events []MorphEvent
}

func (r *recordingStore) EmitMorph(ev MorphEvent) { r.events = append(r.events, ev) }

func TestEventStoreReceivesTransitions(t *testing.T) {
	s := newTestScene(t, smallConfig())
	store := &recordingStore{}
	s.SetEventStore(store)
	require.NoError(t, s.Enter(context.Background(), false))
	s.Toggle()
	assert.Equal(t, StateScattered, s.Group(GroupFiller).State(), "targets regenerate immediately")
	assert.Empty(t, store.events, "delivered on the next Update")
	s.Toggle()

	s.Update(1.0 / 60)
	assert.Equal(t, []MorphEvent{
		{From: StateAssembled, To: StateScattered},
		{From: StateScattered, To: StateAssembled},
	}, store.events)

	s.Update(1.0 / 60)
	assert.Len(t, store.events, 2, "each event is delivered once")
}

func TestEventStoreGesturePollerDeliversOnUpdate(t *testing.T) {
	cfg := smallConfig()
	cfg.PollInterval = Duration{time.Millisecond}
	s := newTestScene(t, cfg)
	store := &recordingStore{}
	s.SetEventStore(store)
	require.NoError(t, s.Enter(context.Background(), true))

	// The poller scatters on its own goroutine; the store sees nothing
	// until Update runs.
	require.Eventually(t, func() bool { return s.State() == StateScattered },
		time.Second, time.Millisecond)
	s.mu.Lock()
	assert.Empty(t, store.events)
	s.mu.Unlock()

	s.Update(1.0 / 60)
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, store.events)
	assert.Equal(t, MorphEvent{From: StateAssembled, To: StateScattered, Source: SourceGesture}, store.events[0])
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	s := newTestScene(t, smallConfig())
	s.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	require.NoError(t, s.Enter(context.Background(), false))

	s.Toggle()
	assert.Empty(t, buf.String(), "quiet unless debug mode is on")

	s.SetDebugMode(true)
	s.Toggle()
	for i := 0; i < debugEvery; i++ {
		s.Update(1.0 / 60)
	}
	out := buf.String()
	assert.Contains(t, out, "msg=morph")
	assert.Contains(t, out, "to=assembled")
	assert.Contains(t, out, "component=ornament")
	assert.Contains(t, out, "msg=frame")
	assert.Contains(t, out, "ribbon_gap=")
}

func TestSceneString(t *testing.T) {
	s := newTestScene(t, smallConfig())
	assert.Equal(t, "ornament.Scene{state: assembled, gesture: false, frames: 0}", s.String())
}
