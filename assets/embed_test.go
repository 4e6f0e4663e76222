package assets

import "testing"

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"sfx/chase.wav", "sfx/chase.wav"},
		{"assets/sfx/chase.wav", "sfx/chase.wav"},
		{"/home/me/warden/assets/sfx/stun.wav", "sfx/stun.wav"},
		{"/tmp/other.wav", "other.wav"},
	}
	for _, c := range cases {
		if got := cleanAssetPath(c.in); got != c.want {
			t.Errorf("cleanAssetPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSFXEmbedded(t *testing.T) {
	for name, path := range SFX() {
		b, err := LoadFile(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(b) < 44 || string(b[:4]) != "RIFF" {
			t.Fatalf("%s: not a wav file", name)
		}
	}
}
