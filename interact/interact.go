// Package interact lets the player use whatever is within reach.
package interact

import (
	"log/slog"
	"math"

	"github.com/milk9111/warden/common"
)

// Interactable is anything the player can use: enemies get stunned, the
// objective item activates the objective.
type Interactable interface {
	Activate()
	Position() common.Vec3
}

// Probe picks the nearest registered target within reach on the ground
// plane.
type Probe struct {
	reach   float64
	targets []Interactable
	logger  *slog.Logger
}

func NewProbe(reach float64, logger *slog.Logger) *Probe {
	if logger == nil {
		logger = slog.Default()
	}
	return &Probe{reach: reach, logger: logger}
}

func (p *Probe) Reach() float64 { return p.reach }

func (p *Probe) Add(target Interactable) {
	if target == nil {
		return
	}
	p.targets = append(p.targets, target)
}

func (p *Probe) Remove(target Interactable) {
	for i, t := range p.targets {
		if t == target {
			p.targets = append(p.targets[:i], p.targets[i+1:]...)
			return
		}
	}
}

func (p *Probe) Len() int { return len(p.targets) }

// Nearest returns the closest target within reach of from. Ties go to the
// target registered first.
func (p *Probe) Nearest(from common.Vec3) (Interactable, bool) {
	var best Interactable
	bestDist := math.Inf(1)
	for _, t := range p.targets {
		d := common.PlanarDistance(from, t.Position())
		if d > p.reach || d >= bestDist {
			continue
		}
		best, bestDist = t, d
	}
	return best, best != nil
}

// Use activates the nearest target within reach and reports whether one was
// found.
func (p *Probe) Use(from common.Vec3) bool {
	target, ok := p.Nearest(from)
	if !ok {
		p.logger.Debug("nothing to interact with", "x", from.X, "z", from.Z)
		return false
	}
	target.Activate()
	return true
}
