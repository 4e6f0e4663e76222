// Package audio holds the headless audio cue sinks.
package audio

import "sync"

// Journal records every cue it is asked to play.
type Journal struct {
	mu   sync.Mutex
	cues []string
}

func (j *Journal) PlayOneShot(clip string) {
	j.mu.Lock()
	j.cues = append(j.cues, clip)
	j.mu.Unlock()
}

// Cues returns a copy of the recorded cues in play order.
func (j *Journal) Cues() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.cues...)
}

// Count reports how often clip was played.
func (j *Journal) Count(clip string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for _, c := range j.cues {
		if c == clip {
			n++
		}
	}
	return n
}

func (j *Journal) Reset() {
	j.mu.Lock()
	j.cues = nil
	j.mu.Unlock()
}

// Sink is anything that plays one-shot cues.
type Sink interface {
	PlayOneShot(clip string)
}

// Tee forwards every cue to each sink.
type Tee []Sink

func (t Tee) PlayOneShot(clip string) {
	for _, s := range t {
		if s != nil {
			s.PlayOneShot(clip)
		}
	}
}
