// Package anim turns animation intent flags into a clip and frame index.
package anim

import "sort"

const (
	ClipIdle  = "idle"
	ClipWalk  = "walk"
	ClipChase = "chase"

	// Parameter names the enemy writes.
	ParamMoving  = "isMoving"
	ParamChasing = "isChasing"

	defaultFPS = 8
)

// Clip describes how a clip plays back.
type Clip struct {
	Frames int
	FPS    float64
	Loop   bool
}

// DefaultClips are the clips every animator knows about.
func DefaultClips() map[string]Clip {
	return map[string]Clip{
		ClipIdle:  {Frames: 4, FPS: 4, Loop: true},
		ClipWalk:  {Frames: 6, FPS: 8, Loop: true},
		ClipChase: {Frames: 6, FPS: 12, Loop: true},
	}
}

// Animator stores named bool parameters and derives the active clip from
// them, advancing frames with Update.
type Animator struct {
	params map[string]bool
	clips  map[string]Clip

	clip    string
	frame   int
	elapsed float64
}

func NewAnimator(clips map[string]Clip) *Animator {
	if len(clips) == 0 {
		clips = DefaultClips()
	}
	return &Animator{
		params: make(map[string]bool),
		clips:  clips,
		clip:   ClipIdle,
	}
}

func (a *Animator) SetBool(name string, value bool) {
	a.params[name] = value
	a.selectClip()
}

func (a *Animator) Bool(name string) bool {
	return a.params[name]
}

// Params returns the parameter names that have been set, sorted.
func (a *Animator) Params() []string {
	names := make([]string, 0, len(a.params))
	for name := range a.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *Animator) Clip() string { return a.clip }

func (a *Animator) Frame() int { return a.frame }

// Update advances the active clip by dt seconds.
func (a *Animator) Update(dt float64) {
	c, ok := a.clips[a.clip]
	if !ok || c.Frames <= 1 {
		return
	}
	fps := c.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	a.elapsed += dt
	step := 1 / fps
	for a.elapsed >= step {
		a.elapsed -= step
		a.frame++
		if a.frame >= c.Frames {
			if c.Loop {
				a.frame = 0
			} else {
				a.frame = c.Frames - 1
			}
		}
	}
}

func (a *Animator) selectClip() {
	next := ClipIdle
	switch {
	case a.params[ParamChasing]:
		next = ClipChase
	case a.params[ParamMoving]:
		next = ClipWalk
	}
	if next == a.clip {
		return
	}
	a.clip = next
	a.frame = 0
	a.elapsed = 0
}
