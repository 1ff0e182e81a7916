package ornament

import (
	"errors"
	"math/rand/v2"
)

// MorphState is the configuration the whole particle field converges toward.
type MorphState uint8

const (
	StateAssembled MorphState = iota // particles gather into the cone
	StateScattered                   // particles drift into a loose cloud
)

// String returns the lowercase state name.
func (s MorphState) String() string {
	switch s {
	case StateAssembled:
		return "assembled"
	case StateScattered:
		return "scattered"
	default:
		return "unknown"
	}
}

// Opposite returns the other state.
func (s MorphState) Opposite() MorphState {
	if s == StateAssembled {
		return StateScattered
	}
	return StateAssembled
}

// TransitionSource identifies which control surface caused a state change.
type TransitionSource uint8

const (
	SourcePointer TransitionSource = iota // toggle command in pointer mode
	SourceGesture                         // edge-detected gesture in gesture mode
)

// String returns the lowercase source name.
func (s TransitionSource) String() string {
	if s == SourceGesture {
		return "gesture"
	}
	return "pointer"
}

// MorphEvent describes one real state transition.
type MorphEvent struct {
	From   MorphState
	To     MorphState
	Source TransitionSource
}

// EventStore is the interface for optional ECS integration.
// When set on a Scene, every MorphEvent is forwarded to it.
type EventStore interface {
	EmitMorph(event MorphEvent)
}

// Euler holds rotation angles in radians, applied in X, Y, Z order.
type Euler struct {
	X, Y, Z float64
}

// Range is a general-purpose min/max range.
// Used by the formations for uniform sampling.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max). When rng is nil the
// package-level source is used.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + uniform(rng)*(r.Max-r.Min)
}

func uniform(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

var (
	// ErrEmptyGroup is returned when a particle group is configured with no instances.
	ErrEmptyGroup = errors.New("ornament: particle group has no instances")
	// ErrInvalidSmoothing is returned when a smoothing factor lies outside (0, 1].
	ErrInvalidSmoothing = errors.New("ornament: smoothing factor must be in (0, 1]")
	// ErrInvalidConfig is returned by Config.Validate for any other bad setting.
	ErrInvalidConfig = errors.New("ornament: invalid config")
	// ErrClosed is returned when a closed Scene is asked to start work.
	ErrClosed = errors.New("ornament: scene closed")
)
