package config

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var ConfigFS embed.FS

// Load reads name from the config directory on disk, falling back to the
// copy embedded in the binary.
func Load(name string) ([]byte, error) {
	clean := cleanConfigPath(name)
	if data, err := os.ReadFile(diskConfigPath(clean)); err == nil {
		return data, nil
	}
	return ConfigFS.ReadFile(clean)
}

func cleanConfigPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "config/"); ok {
		return after
	}
	return s
}

func diskConfigPath(clean string) string {
	return filepath.Join("config", filepath.FromSlash(clean))
}
