package sim

import (
	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/session"
)

// The World is the host scenario scripts run against.

func (w *World) PlayerPosition() common.Vec3 { return w.player.Position() }

func (w *World) Reach() float64 { return w.probe.Reach() }

func (w *World) ObjectivePosition() (common.Vec3, bool) {
	if w.item == nil {
		return common.Vec3{}, false
	}
	return w.item.Position(), true
}

func (w *World) ExitPosition() (common.Vec3, bool) {
	if w.trigger == nil {
		return common.Vec3{}, false
	}
	return w.cfg.Level.Exit.Center, true
}

func (w *World) ObjectiveActive() bool { return w.session.ObjectiveActive() }

func (w *World) Won() bool { return w.session.Won() }

func (w *World) AgentCount() int { return len(w.guards) }

func (w *World) AgentState(i int) string { return w.guards[i].Agent.Kind().String() }

func (w *World) AgentPosition(i int) common.Vec3 { return w.guards[i].Agent.Position() }

// Strike queues an activation of guard i for the next tick.
func (w *World) Strike(i int) bool {
	if i < 0 || i >= len(w.guards) {
		return false
	}
	w.session.Post(session.Event{Type: session.EventActivate, Data: w.guards[i].Agent})
	return true
}
