// Package mixer plays audio cues through ebiten.
package mixer

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Mixer queues cues during a tick and plays them on Flush.
type Mixer struct {
	ctx     *audio.Context
	clips   map[string][]byte
	queue   []string
	players []*audio.Player
	volume  float64
	missing map[string]bool
	logger  *slog.Logger
}

// NewMixer decodes every wav in files (cue name to path in fsys).
func NewMixer(ctx *audio.Context, fsys fs.FS, files map[string]string, logger *slog.Logger) (*Mixer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	clips, err := DecodeClips(fsys, files, ctx.SampleRate())
	if err != nil {
		return nil, err
	}
	return &Mixer{
		ctx:     ctx,
		clips:   clips,
		volume:  1,
		missing: make(map[string]bool),
		logger:  logger,
	}, nil
}

// DecodeClips reads and decodes wav files into PCM at sampleRate.
func DecodeClips(fsys fs.FS, files map[string]string, sampleRate int) (map[string][]byte, error) {
	clips := make(map[string][]byte, len(files))
	for name, path := range files {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("audio: read %s: %w", path, err)
		}
		stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("audio: decode wav %q: %w", path, err)
		}
		pcm, err := io.ReadAll(stream)
		if err != nil {
			return nil, fmt.Errorf("audio: read pcm %q: %w", path, err)
		}
		clips[name] = pcm
	}
	return clips, nil
}

// PlayOneShot queues clip for the next Flush.
func (m *Mixer) PlayOneShot(clip string) {
	m.queue = append(m.queue, clip)
}

// SetVolume sets the volume for cues started from now on, clamped to [0, 1].
func (m *Mixer) SetVolume(v float64) {
	m.volume = max(0, min(1, v))
}

func (m *Mixer) Volume() float64 { return m.volume }

// Flush starts every queued cue and forgets players that have finished.
func (m *Mixer) Flush() {
	alive := m.players[:0]
	for _, p := range m.players {
		if p.IsPlaying() {
			alive = append(alive, p)
		}
	}
	m.players = alive

	for _, clip := range m.queue {
		pcm, ok := m.clips[clip]
		if !ok {
			if !m.missing[clip] {
				m.missing[clip] = true
				m.logger.Warn("unknown audio cue", "clip", clip)
			}
			continue
		}
		if m.volume == 0 {
			continue
		}
		p := m.ctx.NewPlayerFromBytes(pcm)
		p.SetVolume(m.volume)
		p.Play()
		m.players = append(m.players, p)
	}
	m.queue = m.queue[:0]
}
