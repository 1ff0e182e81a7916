package ornament

// Gesture is a discrete hand gesture category.
type Gesture uint8

const (
	GestureNone Gesture = iota
	GesturePinch
	GestureOpen
)

// String returns the lowercase gesture name.
func (g Gesture) String() string {
	switch g {
	case GesturePinch:
		return "pinch"
	case GestureOpen:
		return "open"
	default:
		return "none"
	}
}

// EdgeTracker remembers the last gesture that fired so a held gesture fires
// only once. Observing neither gesture leaves the tracker untouched; only the
// opposite gesture re-arms it.
type EdgeTracker struct {
	last Gesture
}

// Last returns the last gesture that fired.
func (t *EdgeTracker) Last() Gesture { return t.last }

// Observe returns the gesture that fires for h, or GestureNone.
func (t *EdgeTracker) Observe(h HandData) Gesture {
	switch {
	case h.IsPinching && t.last != GesturePinch:
		t.last = GesturePinch
		return GesturePinch
	case h.IsOpen && t.last != GestureOpen:
		t.last = GestureOpen
		return GestureOpen
	}
	return GestureNone
}

// ModeController holds the MorphState and applies transitions from whichever
// control surface is authoritative for the current mode. It is not safe for
// concurrent use; Scene serializes access.
type ModeController struct {
	state    MorphState
	gesture  bool
	tracker  *EdgeTracker // nil in pointer mode
	onChange []func(MorphEvent)
}

// NewModeController returns a controller in pointer mode, ASSEMBLED.
func NewModeController() *ModeController {
	return &ModeController{state: StateAssembled}
}

// State returns the current MorphState.
func (m *ModeController) State() MorphState { return m.state }

// GestureMode reports whether gesture mode is active.
func (m *ModeController) GestureMode() bool { return m.gesture }

// Tracker returns the live edge tracker, or nil in pointer mode.
func (m *ModeController) Tracker() *EdgeTracker { return m.tracker }

// OnChange registers fn to run after every real transition.
func (m *ModeController) OnChange(fn func(MorphEvent)) {
	m.onChange = append(m.onChange, fn)
}

// SetGestureMode switches control surfaces. Switching discards any edge
// tracker state; setting the current mode again is a no-op.
func (m *ModeController) SetGestureMode(enabled bool) {
	if enabled == m.gesture {
		return
	}
	m.gesture = enabled
	if enabled {
		m.tracker = &EdgeTracker{}
	} else {
		m.tracker = nil
	}
}

// Toggle flips the state. It is ignored in gesture mode and reports whether
// it was applied.
func (m *ModeController) Toggle() bool {
	if m.gesture {
		return false
	}
	m.set(m.state.Opposite(), SourcePointer)
	return true
}

// Poll runs one edge-detection step against h. A newly fired pinch selects
// ASSEMBLED and a newly fired open hand selects SCATTERED. It is ignored in
// pointer mode and reports whether a gesture fired.
func (m *ModeController) Poll(h HandData) bool {
	if !m.gesture {
		return false
	}
	switch m.tracker.Observe(h) {
	case GesturePinch:
		m.set(StateAssembled, SourceGesture)
	case GestureOpen:
		m.set(StateScattered, SourceGesture)
	default:
		return false
	}
	return true
}

func (m *ModeController) set(to MorphState, src TransitionSource) {
	if to == m.state {
		return
	}
	ev := MorphEvent{From: m.state, To: to, Source: src}
	m.state = to
	for _, fn := range m.onChange {
		fn(ev)
	}
}
