package ornament

import "math"

// Steer carries the pointer input that may override the spin accumulator.
type Steer struct {
	// Active is true when gesture mode is on and the state is SCATTERED.
	Active bool
	// X is the smoothed pointer x in [0, 1].
	X float64
}

// Engine advances every group once per rendered frame and owns the shared
// spin accumulator.
type Engine struct {
	// SpinRate is the idle spin in radians per second.
	SpinRate float64
	// SteerSmoothing is the fraction of the gap to the steered angle covered
	// per frame.
	SteerSmoothing float64
	// SteerRange is the spin angle span mapped onto pointer x in [0, 1].
	SteerRange float64

	spin    float64
	elapsed float64
}

// Engine defaults.
const (
	DefaultSpinRate       = 0.2
	DefaultSteerSmoothing = 0.1
	DefaultSteerRange     = 4 * math.Pi
)

// NewEngine creates an Engine with default rates.
func NewEngine() *Engine {
	return &Engine{
		SpinRate:       DefaultSpinRate,
		SteerSmoothing: DefaultSteerSmoothing,
		SteerRange:     DefaultSteerRange,
	}
}

// Spin returns the current spin accumulator in radians.
func (e *Engine) Spin() float64 { return e.spin }

// Elapsed returns the accumulated frame time in seconds.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// SteerAngle maps a pointer x in [0, 1] to a spin angle centred on zero.
func (e *Engine) SteerAngle(x float64) float64 {
	return (x - 0.5) * e.SteerRange
}

// Step advances the spin, interpolates every group toward its targets and
// rebuilds their transforms. dt is the frame time in seconds.
func (e *Engine) Step(dt float64, groups []*ParticleGroup, steer Steer) {
	e.elapsed += dt
	if steer.Active {
		e.spin = lerp(e.spin, e.SteerAngle(steer.X), e.SteerSmoothing)
	} else {
		e.spin += dt * e.SpinRate
	}

	for _, g := range groups {
		g.Step()
		g.pose(e.spin, e.elapsed)
	}
}
