package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.tmx
var LevelsFS embed.FS

// LoadEmbedded loads a level bundled with the binary. The .tmx suffix is
// optional.
func LoadEmbedded(name string) (*Level, error) {
	return Load(LevelsFS, cleanLevelPath(name))
}

// Open loads name from disk when such a file exists, otherwise from the
// bundled levels.
func Open(name string) (*Level, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return Load(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}
	return LoadEmbedded(name)
}

// Names lists the bundled levels by stem, sorted.
func Names() ([]string, error) {
	matches, err := fs.Glob(LevelsFS, "*.tmx")
	if err != nil {
		return nil, fmt.Errorf("levels: glob: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".tmx"))
	}
	sort.Strings(names)
	return names, nil
}

func cleanLevelPath(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimPrefix(name, "levels/")
	name = path.Base(name)
	if !strings.HasSuffix(name, ".tmx") {
		name += ".tmx"
	}
	return name
}
