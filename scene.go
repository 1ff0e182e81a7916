package ornament

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Scene owns the particle groups, the mode controller, the shared HandData
// and the gesture poller.
//
// Three activities drive a Scene: the render tick (Update), the detection
// tick (SubmitLandmarks) and the gesture poll (Poll, or the built-in poller
// started in gesture mode). They may be called from different goroutines;
// a single mutex serializes them, so HandData is never torn and the last
// writer wins.
type Scene struct {
	mu sync.Mutex

	cfg        Config
	mode       *ModeController
	engine     *Engine
	classifier *Classifier
	groups     []*ParticleGroup
	byName     map[string]*ParticleGroup
	hand       HandData
	star       *Star
	camera     *Camera

	playing bool
	closed  bool
	poller  *gesturePoller

	store   EventStore
	pending []MorphEvent
	debug   bool
	logger *slog.Logger
	frames uint64

	injectQueue []syntheticInput
	testRunner  *TestRunner
}

// NewScene validates cfg and builds the filler, ornament and ribbon groups
// with ASSEMBLED targets. Current positions start at the origin.
func NewScene(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fillerN, ornamentN, _ := SplitCounts(cfg.TotalCount, cfg.FillerRatio)

	s := &Scene{
		cfg:    cfg,
		mode:   NewModeController(),
		engine: NewEngine(),
		classifier: &Classifier{
			PointerWeight:  cfg.PointerWeight,
			PinchThreshold: cfg.PinchThreshold,
			OpenThreshold:  cfg.OpenThreshold,
		},
		byName: make(map[string]*ParticleGroup, 3),
		hand:   DefaultHandData(),
		star:   NewStar(),
		camera: NewCamera(),
		debug:  cfg.Debug,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.engine.SpinRate = cfg.SpinRate
	s.engine.SteerSmoothing = cfg.SteerSmoothing

	for _, gc := range []GroupConfig{
		{Name: GroupFiller, Count: fillerN, Smoothing: cfg.FillerSmoothing, Formation: FillerFormation{}},
		{Name: GroupOrnament, Count: ornamentN, Smoothing: cfg.OrnamentSmoothing, Formation: OrnamentFormation{}},
		{Name: GroupRibbon, Count: cfg.RibbonCount, Smoothing: cfg.RibbonSmoothing, Formation: RibbonFormation{}},
	} {
		g, err := NewParticleGroup(gc)
		if err != nil {
			return nil, err
		}
		g.Retarget(StateAssembled)
		s.groups = append(s.groups, g)
		s.byName[g.Name()] = g
	}

	s.mode.OnChange(s.onMorph)
	return s, nil
}

// onMorph regenerates every target buffer for the new state. Runs with s.mu
// held, inside the transition, possibly on the poller goroutine. The event
// is queued and reaches the store on the next Update.
func (s *Scene) onMorph(ev MorphEvent) {
	for _, g := range s.groups {
		g.Retarget(ev.To)
	}
	if s.store != nil {
		s.pending = append(s.pending, ev)
	}
	if s.debug {
		s.logger.Debug("morph",
			slog.String("from", ev.From.String()),
			slog.String("to", ev.To.String()),
			slog.String("source", ev.Source.String()),
			slog.Uint64("frame", s.frames))
	}
}

// Enter starts the session in pointer mode (gesture false) or gesture mode.
// In gesture mode the edge-detection poller runs until gesture mode is
// switched off or the scene is closed. If ctx ends first the scene falls
// back to pointer mode, so an already cancelled ctx leaves it in pointer
// mode.
func (s *Scene) Enter(ctx context.Context, gesture bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.playing = true
	old := s.switchModeLocked(ctx, gesture)
	s.mu.Unlock()

	if old != nil {
		old.stop()
	}
	return nil
}

// SetGestureMode switches between pointer and gesture control. Any edge
// tracker state is discarded on a switch.
func (s *Scene) SetGestureMode(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	old := s.switchModeLocked(ctx, enabled)
	s.mu.Unlock()

	if old != nil {
		old.stop()
	}
	return nil
}

// switchModeLocked applies the mode and returns a poller the caller must
// stop after releasing s.mu.
func (s *Scene) switchModeLocked(ctx context.Context, enabled bool) *gesturePoller {
	if enabled == s.mode.GestureMode() {
		return nil
	}
	s.mode.SetGestureMode(enabled)
	if s.debug {
		s.logger.Debug("mode", slog.Bool("gesture", enabled))
	}

	old := s.poller
	s.poller = nil
	if old != nil {
		old.cancel()
	}
	if enabled {
		s.poller = startGesturePoller(ctx, s.cfg.PollInterval.Duration, s.pollTick, s.pollerExpired)
	}
	return old
}

// pollerExpired drops back to pointer mode when the caller's ctx ended the
// poller. Pollers replaced or stopped by the scene are no longer s.poller
// and are ignored.
func (s *Scene) pollerExpired(p *gesturePoller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.poller != p {
		return
	}
	s.poller = nil
	s.mode.SetGestureMode(false)
	if s.debug {
		s.logger.Debug("mode", slog.Bool("gesture", false), slog.String("reason", "context done"))
	}
}

// pollTick is the poller callback. Ticks that race a cancellation are dropped.
func (s *Scene) pollTick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil || s.closed {
		return
	}
	s.mode.Poll(s.hand)
}

// Poll runs one gesture edge-detection step immediately. It is ignored in
// pointer mode and reports whether a gesture fired.
func (s *Scene) Poll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.mode.Poll(s.hand)
}

// Toggle flips between ASSEMBLED and SCATTERED. It is ignored before Enter,
// in gesture mode and after Close, and reports whether it was applied.
func (s *Scene) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toggleLocked()
}

func (s *Scene) toggleLocked() bool {
	if s.closed || !s.playing {
		return false
	}
	return s.mode.Toggle()
}

// SubmitLandmarks folds one detection snapshot into the shared HandData.
// An empty snapshot means no hand was seen and leaves HandData unchanged.
// Snapshots are ignored outside gesture mode. Reports whether HandData was
// updated.
func (s *Scene) SubmitLandmarks(hand []Landmark) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(hand)
}

func (s *Scene) submitLocked(hand []Landmark) bool {
	if s.closed || !s.mode.GestureMode() {
		return false
	}
	next, ok := s.classifier.Classify(s.hand, hand)
	if ok {
		s.hand = next
	}
	return ok
}

// Update advances the scene by dt seconds: scripted input, interpolation,
// transforms, the star float and the camera orbit.
func (s *Scene) Update(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.flushEvents()
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()

	state := s.mode.State()
	gesture := s.mode.GestureMode()
	s.engine.Step(dt, s.groups, Steer{
		Active: gesture && state == StateScattered,
		X:      s.hand.X,
	})
	s.star.Update(dt, state)
	s.camera.update(dt, !gesture)
	s.frames++

	if s.debug {
		s.debugLog(time.Since(t0))
	}
}

// flushEvents hands queued transitions to the store on the Update
// goroutine. Called with s.mu held.
func (s *Scene) flushEvents() {
	if len(s.pending) == 0 {
		return
	}
	if s.store != nil {
		for _, ev := range s.pending {
			s.store.EmitMorph(ev)
		}
	}
	clear(s.pending)
	s.pending = s.pending[:0]
}

// Close cancels the gesture poller and freezes every tick. Close is
// idempotent.
func (s *Scene) Close() {
	s.mu.Lock()
	s.closed = true
	p := s.poller
	s.poller = nil
	s.mu.Unlock()

	if p != nil {
		p.stop()
	}
}

// State returns the current MorphState.
func (s *Scene) State() MorphState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode.State()
}

// GestureMode reports whether gesture mode is active.
func (s *Scene) GestureMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode.GestureMode()
}

// Playing reports whether Enter has been called.
func (s *Scene) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Hand returns a copy of the shared HandData.
func (s *Scene) Hand() HandData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hand
}

// Frames returns the number of completed Update calls.
func (s *Scene) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Groups returns the particle groups in draw order: filler, ornament,
// ribbon. Group buffers are written by Update; read them from the goroutine
// that calls Update.
func (s *Scene) Groups() []*ParticleGroup {
	return s.groups
}

// Group returns the group with the given name, or nil.
func (s *Scene) Group(name string) *ParticleGroup {
	return s.byName[name]
}

// Engine returns the interpolation engine.
func (s *Scene) Engine() *Engine {
	return s.engine
}

// Star returns the highlighted star animation.
func (s *Scene) Star() *Star {
	return s.star
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetEventStore sets the optional ECS bridge. Transitions are delivered to
// it at the start of the next Update, on the goroutine that calls Update.
func (s *Scene) SetEventStore(store EventStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
}

// SetLogger replaces the logger used in debug mode. A nil logger discards.
func (s *Scene) SetLogger(l *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.logger = l.With(slog.String("component", "ornament"))
}

// SetDebugMode enables or disables debug logging of transitions and
// per-frame stats.
func (s *Scene) SetDebugMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debug = enabled
}

// String implements fmt.Stringer for logs.
func (s *Scene) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("ornament.Scene{state: %s, gesture: %t, frames: %d}",
		s.mode.State(), s.mode.GestureMode(), s.frames)
}
