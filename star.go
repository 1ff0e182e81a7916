package ornament

import (
	"github.com/golang/geo/r3"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Star float animation constants.
const (
	starHeight        = 12.0
	starBobHalfPeriod = 1.5 // seconds from bottom to top
	starAmpAssembled  = 0.5
	starAmpScattered  = 1.5
	starAmpDuration   = 1.0
)

// Star is the highlighted object crowning the ornament. It bobs on a yoyo
// tween whose amplitude eases toward a per-state value.
type Star struct {
	// Base is the rest position.
	Base r3.Vector

	bob      *gween.Tween
	bobUp    bool
	bobValue float64

	amp      float64
	ampTween *gween.Tween
	state    MorphState
}

// NewStar returns a Star at rest above the cone, settled for ASSEMBLED.
func NewStar() *Star {
	return &Star{
		Base:  r3.Vector{Y: starHeight},
		bob:   gween.New(-1, 1, starBobHalfPeriod, ease.InOutSine),
		bobUp: true,
		amp:   starAmpAssembled,
		state: StateAssembled,
	}
}

func starAmplitude(state MorphState) float64 {
	if state == StateScattered {
		return starAmpScattered
	}
	return starAmpAssembled
}

// Update advances the bob by dt seconds and retargets the amplitude when
// state differs from the last call.
func (s *Star) Update(dt float64, state MorphState) {
	if state != s.state {
		s.state = state
		s.ampTween = gween.New(float32(s.amp), float32(starAmplitude(state)), starAmpDuration, ease.OutCubic)
	}
	if s.ampTween != nil {
		v, done := s.ampTween.Update(float32(dt))
		s.amp = float64(v)
		if done {
			s.amp = starAmplitude(s.state)
			s.ampTween = nil
		}
	}

	v, done := s.bob.Update(float32(dt))
	s.bobValue = float64(v)
	if done {
		s.bobUp = !s.bobUp
		from, to := float32(1), float32(-1)
		if s.bobUp {
			from, to = -1, 1
		}
		s.bob = gween.New(from, to, starBobHalfPeriod, ease.InOutSine)
	}
}

// Amplitude returns the current bob amplitude.
func (s *Star) Amplitude() float64 { return s.amp }

// Position returns the star's current position.
func (s *Star) Position() r3.Vector {
	return s.Base.Add(r3.Vector{Y: s.bobValue * s.amp})
}
