package mixer

import (
	"testing"

	"github.com/milk9111/warden/assets"
	"github.com/milk9111/warden/enemy"
)

var _ enemy.AudioSink = (*Mixer)(nil)

func TestDecodeClips(t *testing.T) {
	clips, err := DecodeClips(assets.FS(), assets.SFX(), 44100)
	if err != nil {
		t.Fatalf("DecodeClips: %v", err)
	}
	for name := range assets.SFX() {
		pcm := clips[name]
		// 16-bit stereo frames.
		if len(pcm) == 0 || len(pcm)%4 != 0 {
			t.Fatalf("%s: unexpected pcm length %d", name, len(pcm))
		}
	}

	if _, err := DecodeClips(assets.FS(), map[string]string{"nope": "sfx/nope.wav"}, 44100); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
