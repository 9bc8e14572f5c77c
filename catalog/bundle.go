package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedBundle is returned for bundle files with an unknown extension
var ErrUnsupportedBundle = errors.New("unsupported bundle format")

// LoadFile reads a TOML (.toml) or YAML (.yaml, .yml) bundle into a catalog
func LoadFile(path string, tag language.Tag) (*MessageCatalog, error) {
	raw := make(map[string]any)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode bundle %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read bundle %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode bundle %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBundle, path)
	}

	messages := make(map[string]string, len(raw))
	flatten("", raw, messages)
	return New(tag, messages)
}

// LoadDir loads every bundle in dir and registers it under its file stem,
// so "svc.A.toml" becomes the catalog of logger "svc.A". Files with other
// extensions are skipped. It returns the number of registered catalogs.
func LoadDir(dir string, tag language.Tag, registry *MapRegistry) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog dir: %w", err)
	}

	n := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		switch strings.ToLower(ext) {
		case ".toml", ".yaml", ".yml":
		default:
			continue
		}

		cat, err := LoadFile(filepath.Join(dir, name), tag)
		if err != nil {
			return n, err
		}
		registry.Register(strings.TrimSuffix(name, ext), cat)
		n++
	}
	return n, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
