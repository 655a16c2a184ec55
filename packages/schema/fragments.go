package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Bundled reusable schema fragments, addressable by their $id (e.g.
// "https://jsonspec.dev/fragments/uuid.json").
//
//go:embed fragments/*.json
var fragmentFS embed.FS

// registerFragments registers the embedded fragments plus any fragments
// found in extraDirs with the schema loader, keyed by $id. Files without
// an $id or that fail to parse are skipped; the directories may hold
// non-schema files.
func registerFragments(loader *gojsonschema.SchemaLoader, extraDirs []string) (map[string]bool, error) {
	registered := make(map[string]bool)

	entries, err := fragmentFS.ReadDir("fragments")
	if err != nil {
		return nil, fmt.Errorf("%w: embedded fragments: %v", ErrSchemaRetrieval, err)
	}
	for _, entry := range entries {
		data, err := fragmentFS.ReadFile("fragments/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: embedded fragment %s: %v", ErrSchemaRetrieval, entry.Name(), err)
		}
		if err := registerFragment(loader, data, registered); err != nil {
			return nil, fmt.Errorf("embedded fragment %s: %w", entry.Name(), err)
		}
	}

	for _, dir := range extraDirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !isSchemaExt(path) {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read fragment %s: %w", path, err)
			}
			// Non-schema files in the tree are tolerated.
			_ = registerFragment(loader, data, registered)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: fragment dir %s: %v", ErrSchemaRetrieval, dir, err)
		}
	}

	return registered, nil
}

func registerFragment(loader *gojsonschema.SchemaLoader, data []byte, registered map[string]bool) error {
	doc, normalized, err := normalizeSchemaBytes(data)
	if err != nil {
		return err
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	id, _ := m["$id"].(string)
	if id == "" {
		id, _ = m["id"].(string)
	}
	id = strings.TrimSpace(id)
	if id == "" || registered[id] {
		return nil
	}

	if err := loader.AddSchema(id, gojsonschema.NewBytesLoader(normalized)); err != nil {
		return fmt.Errorf("%w: register %s: %v", ErrSchemaResolution, id, err)
	}
	registered[id] = true
	return nil
}

func isSchemaExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
