package session

// ObjectiveTracker is the HUD's model of the objective text and the end
// prompt.
type ObjectiveTracker struct {
	objectiveA string
	objectiveB string

	text   string
	prompt bool

	unsubscribe []func()
}

// NewObjectiveTracker shows objectiveA until the objective is activated,
// then objectiveB.
func NewObjectiveTracker(s *Session, objectiveA, objectiveB string) *ObjectiveTracker {
	t := &ObjectiveTracker{
		objectiveA: objectiveA,
		objectiveB: objectiveB,
		text:       objectiveA,
	}
	if s.ObjectiveActive() {
		t.text = objectiveB
	}
	t.prompt = s.Won()
	t.unsubscribe = append(t.unsubscribe,
		s.Objective().Subscribe(func() { t.text = t.objectiveB }),
		s.Victory().Subscribe(func() { t.prompt = true }),
	)
	return t
}

func (t *ObjectiveTracker) Text() string { return t.text }

// PromptVisible reports whether the end prompt should be shown.
func (t *ObjectiveTracker) PromptVisible() bool { return t.prompt }

func (t *ObjectiveTracker) Close() {
	for _, fn := range t.unsubscribe {
		fn()
	}
	t.unsubscribe = nil
}
