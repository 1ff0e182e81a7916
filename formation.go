package ornament

import (
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r3"
)

// Cone dimensions shared by every formation. Heights are measured from the
// base of the ornament; the radius tapers to zero at coneApex.
const (
	coneHeight  = 10.0
	coneApex    = 11.0
	scatterLift = 5.0
)

// Formation is the per-group rule set: where each instance should sit for a
// given MorphState and how it is oriented each frame.
type Formation interface {
	// Target returns the destination of instance i out of n for state.
	// It is evaluated once per instance per state transition.
	Target(state MorphState, i, n int) r3.Vector
	// Orient returns the rotation and uniform scale of instance i given the
	// shared spin accumulator and the elapsed time in seconds.
	Orient(i int, spin, elapsed float64) (Euler, float64)
}

// taper returns the cone radius at height h for a base radius.
func taper(h, base float64) float64 {
	return (1 - h/coneApex) * base
}

// onCircle places a point at height h, radius r and azimuth theta.
func onCircle(h, r, theta float64) r3.Vector {
	return r3.Vector{X: math.Cos(theta) * r, Y: h, Z: math.Sin(theta) * r}
}

// scatter samples a cube of the given half-width centred scatterLift above
// the origin.
func scatter(rng *rand.Rand, halfWidth float64) r3.Vector {
	axis := Range{-halfWidth, halfWidth}
	return r3.Vector{
		X: axis.Random(rng),
		Y: axis.Random(rng) + scatterLift,
		Z: axis.Random(rng),
	}
}

// FillerFormation fills the cone volume, denser toward the trunk.
type FillerFormation struct {
	// Rand overrides the package-level random source when non-nil.
	Rand *rand.Rand
}

const (
	fillerRadius  = 4.5
	fillerScatter = 20.0
	fillerScale   = 0.2
)

// Target implements Formation.
func (f FillerFormation) Target(state MorphState, _, _ int) r3.Vector {
	if state == StateScattered {
		return scatter(f.Rand, fillerScatter)
	}
	h := uniform(f.Rand) * coneHeight
	r := taper(h, fillerRadius) * math.Sqrt(uniform(f.Rand))
	return onCircle(h, r, uniform(f.Rand)*2*math.Pi)
}

// Orient implements Formation.
func (FillerFormation) Orient(i int, spin, _ float64) (Euler, float64) {
	return Euler{X: float64(i) * 0.005, Y: spin + float64(i)*0.01}, fillerScale
}

// OrnamentFormation places instances on the cone's outer shell.
type OrnamentFormation struct {
	// Rand overrides the package-level random source when non-nil.
	Rand *rand.Rand
}

const (
	ornamentRadius  = 4.6
	ornamentScatter = 22.5
	ornamentMinH    = 0.5
)

// Target implements Formation.
func (f OrnamentFormation) Target(state MorphState, _, _ int) r3.Vector {
	if state == StateScattered {
		return scatter(f.Rand, ornamentScatter)
	}
	h := Range{ornamentMinH, coneHeight}.Random(f.Rand)
	return onCircle(h, taper(h, ornamentRadius), uniform(f.Rand)*2*math.Pi)
}

// Orient implements Formation. Scale pulses around 0.15.
func (OrnamentFormation) Orient(i int, spin, elapsed float64) (Euler, float64) {
	fi := float64(i)
	return Euler{Y: spin*1.5 + fi}, 0.15 + math.Sin(elapsed+fi)*0.05
}

// RibbonFormation winds a helix three times around the cone when assembled.
// The assembled target is a pure function of the index.
type RibbonFormation struct {
	// Rand overrides the package-level random source when non-nil.
	Rand *rand.Rand
}

const (
	ribbonRadius  = 4.8
	ribbonScatter = 25.0
	ribbonTurns   = 3
	ribbonScale   = 0.1
)

// Target implements Formation.
func (f RibbonFormation) Target(state MorphState, i, n int) r3.Vector {
	if state == StateScattered {
		return scatter(f.Rand, ribbonScatter)
	}
	return RibbonPoint(i, n)
}

// Orient implements Formation. Ribbon pieces tumble with time, ignoring spin.
func (RibbonFormation) Orient(i int, _, elapsed float64) (Euler, float64) {
	fi := float64(i)
	return Euler{X: elapsed*2 + fi, Y: elapsed * 1.5, Z: fi}, ribbonScale
}

// RibbonPoint returns point i of n on the assembled helix.
func RibbonPoint(i, n int) r3.Vector {
	if n <= 0 {
		return r3.Vector{}
	}
	p := float64(i) / float64(n)
	h := p * coneHeight
	return onCircle(h, taper(h, ribbonRadius), p*ribbonTurns*2*math.Pi)
}

// SplitCounts divides a total instance budget between the filler and
// ornament groups by ratio, keeping both counts at least one.
func SplitCounts(total int, ratio float64) (filler, ornament int, ok bool) {
	if total < 2 || ratio < 0 || ratio > 1 {
		return 0, 0, false
	}
	filler = int(math.Floor(float64(total) * ratio))
	if filler < 1 {
		filler = 1
	}
	if filler > total-1 {
		filler = total - 1
	}
	return filler, total - filler, true
}
