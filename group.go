package ornament

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Group names used by NewScene.
const (
	GroupFiller   = "filler"
	GroupOrnament = "ornament"
	GroupRibbon   = "ribbon"
)

// GroupConfig controls how a ParticleGroup is built.
type GroupConfig struct {
	// Name identifies the group to renderers.
	Name string
	// Count is the number of instances. Must be positive.
	Count int
	// Smoothing is the per-frame fraction of the remaining distance covered,
	// in (0, 1].
	Smoothing float64
	// Formation generates targets and orientations.
	Formation Formation
}

// ParticleGroup is a fixed-size set of instances chasing a target buffer.
// The target buffer is rebuilt only by Retarget; the current buffer is only
// ever moved by Step.
type ParticleGroup struct {
	name       string
	formation  Formation
	smoothing  float64
	state      MorphState
	target     []r3.Vector
	current    []r3.Vector
	transforms []Transform
}

// NewParticleGroup validates cfg and allocates the group's buffers. Current
// positions start at the origin; call Retarget to populate targets.
func NewParticleGroup(cfg GroupConfig) (*ParticleGroup, error) {
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("%w: %q count %d", ErrEmptyGroup, cfg.Name, cfg.Count)
	}
	if !(cfg.Smoothing > 0 && cfg.Smoothing <= 1) {
		return nil, fmt.Errorf("%w: %q smoothing %v", ErrInvalidSmoothing, cfg.Name, cfg.Smoothing)
	}
	if cfg.Formation == nil {
		return nil, fmt.Errorf("%w: %q has no formation", ErrInvalidConfig, cfg.Name)
	}
	return &ParticleGroup{
		name:       cfg.Name,
		formation:  cfg.Formation,
		smoothing:  cfg.Smoothing,
		target:     make([]r3.Vector, cfg.Count),
		current:    make([]r3.Vector, cfg.Count),
		transforms: make([]Transform, cfg.Count),
	}, nil
}

// Name returns the group name.
func (g *ParticleGroup) Name() string { return g.name }

// Len returns the number of instances.
func (g *ParticleGroup) Len() int { return len(g.current) }

// Smoothing returns the group's smoothing factor.
func (g *ParticleGroup) Smoothing() float64 { return g.smoothing }

// State returns the state the targets were last generated for.
func (g *ParticleGroup) State() MorphState { return g.state }

// Target returns the target of instance i.
func (g *ParticleGroup) Target(i int) r3.Vector { return g.target[i] }

// Current returns the live position of instance i.
func (g *ParticleGroup) Current(i int) r3.Vector { return g.current[i] }

// Transforms returns the transforms written by the last Engine step.
// The returned slice is reused every frame and MUST NOT be retained.
func (g *ParticleGroup) Transforms() []Transform { return g.transforms }

// Retarget regenerates every target for state. Each instance is sampled
// exactly once.
func (g *ParticleGroup) Retarget(state MorphState) {
	g.state = state
	n := len(g.target)
	for i := range g.target {
		g.target[i] = g.formation.Target(state, i, n)
	}
}

// SetCurrent places every instance at its target immediately.
func (g *ParticleGroup) SetCurrent() {
	copy(g.current, g.target)
}

// Step moves every instance a fixed fraction of the way to its target.
func (g *ParticleGroup) Step() {
	a := g.smoothing
	for i := range g.current {
		c := &g.current[i]
		t := g.target[i]
		c.X = lerp(c.X, t.X, a)
		c.Y = lerp(c.Y, t.Y, a)
		c.Z = lerp(c.Z, t.Z, a)
	}
}

// pose rebuilds the transform buffer from the current positions.
func (g *ParticleGroup) pose(spin, elapsed float64) {
	for i, c := range g.current {
		rot, scale := g.formation.Orient(i, spin, elapsed)
		g.transforms[i] = Transform{Position: c, Rotation: rot, Scale: scale}
	}
}

// MaxDistance returns the largest distance between any instance and its target.
func (g *ParticleGroup) MaxDistance() float64 {
	var worst float64
	for i, c := range g.current {
		if d := c.Distance(g.target[i]); d > worst {
			worst = d
		}
	}
	return worst
}

// Converged reports whether every instance lies within tol of its target.
func (g *ParticleGroup) Converged(tol float64) bool {
	return g.MaxDistance() <= tol
}
