package session

import "github.com/milk9111/warden/common"

// TargetItem is the objective pickup. Using it activates the session's
// objective.
type TargetItem struct {
	session  *Session
	position common.Vec3
}

func NewTargetItem(s *Session, position common.Vec3) *TargetItem {
	return &TargetItem{session: s, position: position}
}

func (t *TargetItem) Activate() {
	t.session.ActivateObjective()
}

func (t *TargetItem) Position() common.Vec3 { return t.position }

// Used reports whether the objective has been activated.
func (t *TargetItem) Used() bool { return t.session.ObjectiveActive() }
