package ornament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifierHysteresis(t *testing.T) {
	c := NewClassifier()
	tests := []struct {
		name         string
		pinch        float64
		open         bool
		wantPinching bool
		wantOpen     bool
	}{
		{"pinched", 0.05, false, true, false},
		{"pinched with fingers up", 0.05, true, true, false},
		{"dead zone", 0.10, true, false, false},
		{"open", 0.15, true, false, true},
		{"wide but curled", 0.15, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := SyntheticHand(0.4, 0.4, tt.pinch, tt.open)
			require.InDelta(t, tt.pinch, PinchDistance(hand), 1e-12)
			require.Equal(t, tt.open, OpenHeuristic(hand))

			got, ok := c.Classify(DefaultHandData(), hand)
			require.True(t, ok)
			assert.Equal(t, tt.wantPinching, got.IsPinching)
			assert.Equal(t, tt.wantOpen, got.IsOpen)
		})
	}
}

func TestClassifierNeverBothFlags(t *testing.T) {
	c := NewClassifier()
	for d := 0.0; d < 0.3; d += 0.005 {
		got, _ := c.Classify(DefaultHandData(), SyntheticHand(0.5, 0.5, d, true))
		assert.False(t, got.IsPinching && got.IsOpen, "distance %v", d)
	}
}

func TestClassifierSmoothing(t *testing.T) {
	c := NewClassifier()
	prev := HandData{X: 0.5, Y: 0.5}

	// Fingertip at image x=0 mirrors to pointer x=1.
	got, ok := c.Classify(prev, SyntheticHand(0, 1, 0.2, true))
	require.True(t, ok)
	assert.InDelta(t, 0.5*0.7+1.0*0.3, got.X, 1e-12)
	assert.InDelta(t, 0.65, got.X, 1e-12)
	assert.InDelta(t, 0.65, got.Y, 1e-12)
}

func TestClassifierNoHandIsNoop(t *testing.T) {
	c := NewClassifier()
	prev := HandData{X: 0.2, Y: 0.8, IsPinching: true}

	got, ok := c.Classify(prev, nil)
	assert.False(t, ok)
	assert.Equal(t, prev, got)

	got, ok = c.Classify(prev, make([]Landmark, LandmarkCount-1))
	assert.False(t, ok)
	assert.Equal(t, prev, got)
}

func TestPinchDistanceUsesDepth(t *testing.T) {
	hand := SyntheticHand(0.5, 0.5, 0, true)
	hand[LandmarkThumbTip].Z = 0.2
	assert.InDelta(t, 0.2, PinchDistance(hand), 1e-12)
}

func TestHandDataGesture(t *testing.T) {
	assert.Equal(t, GestureOpen, DefaultHandData().Gesture())
	assert.Equal(t, GesturePinch, HandData{IsPinching: true}.Gesture())
	assert.Equal(t, GestureNone, HandData{}.Gesture())
}
