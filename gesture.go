package ornament

import "github.com/golang/geo/r3"

// Hand landmark indices used by the classifier. The full model emits
// LandmarkCount points per hand.
const (
	LandmarkCount     = 21
	LandmarkWrist     = 0
	LandmarkThumbTip  = 4
	LandmarkIndexMCP  = 5
	LandmarkIndexTip  = 8
	LandmarkMiddleMCP = 9
	LandmarkMiddleTip = 12
)

// Landmark is one detected keypoint. X and Y are normalized image
// coordinates in [0, 1] with Y increasing downward; Z is relative depth.
type Landmark struct {
	X, Y, Z float64
}

// Vector returns the landmark as an r3.Vector.
func (l Landmark) Vector() r3.Vector {
	return r3.Vector{X: l.X, Y: l.Y, Z: l.Z}
}

// HandData is the smoothed pointer plus the two gesture flags.
type HandData struct {
	X, Y       float64
	IsPinching bool
	IsOpen     bool
}

// DefaultHandData returns the value held before any hand is detected.
func DefaultHandData() HandData {
	return HandData{X: 0.5, Y: 0.5, IsOpen: true}
}

// Gesture returns the discrete gesture the flags assert. Pinching wins when
// both are set.
func (h HandData) Gesture() Gesture {
	switch {
	case h.IsPinching:
		return GesturePinch
	case h.IsOpen:
		return GestureOpen
	default:
		return GestureNone
	}
}

// Classifier defaults.
const (
	DefaultPointerWeight  = 0.3
	DefaultPinchThreshold = 0.08
	DefaultOpenThreshold  = 0.12
)

// Classifier turns landmark snapshots into HandData. Distances between
// PinchThreshold and OpenThreshold assert neither flag.
type Classifier struct {
	// PointerWeight is the weight of the newest sample in the pointer EMA.
	PointerWeight float64
	// PinchThreshold is the thumb-index distance below which the hand pinches.
	PinchThreshold float64
	// OpenThreshold is the distance above which an open hand is reported.
	OpenThreshold float64
}

// NewClassifier returns a Classifier with default weights and thresholds.
func NewClassifier() *Classifier {
	return &Classifier{
		PointerWeight:  DefaultPointerWeight,
		PinchThreshold: DefaultPinchThreshold,
		OpenThreshold:  DefaultOpenThreshold,
	}
}

// Classify folds one snapshot into prev. A snapshot with fewer than
// LandmarkCount points means no hand was seen; prev is returned unchanged
// with ok false.
func (c *Classifier) Classify(prev HandData, hand []Landmark) (next HandData, ok bool) {
	if len(hand) < LandmarkCount {
		return prev, false
	}
	tip := hand[LandmarkIndexTip]
	x := 1 - tip.X // camera image is mirrored
	y := tip.Y

	pinch := PinchDistance(hand)
	return HandData{
		X:          c.smooth(prev.X, x),
		Y:          c.smooth(prev.Y, y),
		IsPinching: pinch < c.PinchThreshold,
		IsOpen:     OpenHeuristic(hand) && pinch > c.OpenThreshold,
	}, true
}

func (c *Classifier) smooth(prev, sample float64) float64 {
	return prev*(1-c.PointerWeight) + sample*c.PointerWeight
}

// PinchDistance is the 3D distance between the thumb and index fingertips.
func PinchDistance(hand []Landmark) float64 {
	return hand[LandmarkThumbTip].Vector().Distance(hand[LandmarkIndexTip].Vector())
}

// OpenHeuristic reports whether the index and middle fingertips are both
// above their knuckles.
func OpenHeuristic(hand []Landmark) bool {
	return hand[LandmarkIndexTip].Y < hand[LandmarkIndexMCP].Y &&
		hand[LandmarkMiddleTip].Y < hand[LandmarkMiddleMCP].Y
}

// SyntheticHand builds a snapshot whose index fingertip sits at the
// unmirrored image position (x, y), whose thumb tip lies pinch away from it,
// and whose index and middle fingers are raised when open is true.
func SyntheticHand(x, y, pinch float64, open bool) []Landmark {
	hand := make([]Landmark, LandmarkCount)
	for i := range hand {
		hand[i] = Landmark{X: x, Y: y + 0.2}
	}
	hand[LandmarkWrist] = Landmark{X: x, Y: y + 0.3}

	knuckle := y + 0.1
	if !open {
		knuckle = y - 0.1
	}
	hand[LandmarkIndexTip] = Landmark{X: x, Y: y}
	hand[LandmarkIndexMCP] = Landmark{X: x, Y: knuckle}
	hand[LandmarkMiddleTip] = Landmark{X: x + 0.02, Y: y}
	hand[LandmarkMiddleMCP] = Landmark{X: x + 0.02, Y: knuckle}
	hand[LandmarkThumbTip] = Landmark{X: x - pinch, Y: y}
	return hand
}
