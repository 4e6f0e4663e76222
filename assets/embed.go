package assets

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed sfx/*.wav
var assetsFS embed.FS

// FS exposes the embedded assets rooted at the assets directory.
func FS() fs.FS {
	return assetsFS
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// SFX maps cue names to their embedded sound files.
func SFX() map[string]string {
	return map[string]string{
		"wander":    "sfx/wander.wav",
		"chase":     "sfx/chase.wav",
		"stun":      "sfx/stun.wav",
		"objective": "sfx/objective.wav",
		"victory":   "sfx/victory.wav",
	}
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
