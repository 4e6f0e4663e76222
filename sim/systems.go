package sim

import "github.com/milk9111/warden/common"

func dispatchSystem(w *World, _ float64) {
	w.session.Dispatch()
}

func scriptSystem(w *World, _ float64) {
	if w.script == nil || w.script.Done() {
		return
	}
	if err := w.script.Step(w); err != nil {
		w.logger.Warn("scenario script failed, player stops", "script", w.script.Name(), "err", err)
		w.intent = common.Vec3{}
		w.script = nil
	}
}

func playerSystem(w *World, _ float64) {
	w.player.Move(w.intent)
}

func interactSystem(w *World, _ float64) {
	if !w.use {
		return
	}
	w.use = false
	w.probe.Use(w.player.Position())
}

func agentSystem(w *World, dt float64) {
	for _, g := range w.guards {
		g.Agent.Update(dt)
		g.Animator.Update(dt)
	}
}

func physicsSystem(w *World, dt float64) {
	w.space.Step(dt)
}

func triggerSystem(w *World, _ float64) {
	if w.trigger == nil {
		return
	}
	w.trigger.Update(w.player.Position())
}
