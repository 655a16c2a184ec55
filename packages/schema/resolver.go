package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// maxRefDepth bounds recursive preloading of remote $ref chains.
const maxRefDepth = 10

// Resolver compiles schema sources into validatable schemas. The zero
// value is not usable; construct with NewResolver.
type Resolver struct {
	fragmentDirs []string
	retriever    *Retriever
}

// ResolverOption is a functional option for configuring a Resolver.
type ResolverOption func(*Resolver)

// WithFragmentDirs adds directories whose *.json/*.yaml files are
// registered by $id as additional $ref resolution roots.
func WithFragmentDirs(dirs ...string) ResolverOption {
	return func(r *Resolver) {
		r.fragmentDirs = append(r.fragmentDirs, dirs...)
	}
}

// WithRetriever sets the retriever used to preload remote $ref targets.
func WithRetriever(ret *Retriever) ResolverOption {
	return func(r *Resolver) {
		r.retriever = ret
	}
}

func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CompileFile compiles the schema document at path. The path is
// canonicalised (absolute, symlinks resolved) and its file:// URI becomes
// the base against which relative $refs resolve.
func (r *Resolver) CompileFile(path string) (*Schema, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaRetrieval, path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaRetrieval, path, err)
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaRetrieval, resolved, err)
	}

	doc, normalized, err := normalizeSchemaBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaParse, resolved, err)
	}

	loader, err := r.newSchemaLoader(doc)
	if err != nil {
		return nil, err
	}

	// Compile JSON schemas by reference so relative $refs resolve against
	// the file's URI. YAML schemas were rewritten to JSON and lose that
	// base; their refs resolve via fragments and preloaded remotes only.
	var root gojsonschema.JSONLoader
	if isYAMLPath(resolved) {
		root = gojsonschema.NewBytesLoader(normalized)
	} else {
		root = gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(resolved))
	}

	compiled, err := loader.Compile(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaResolution, resolved, err)
	}
	return &Schema{compiled: compiled}, nil
}

// CompileBytes compiles a schema document given as JSON or YAML bytes.
func (r *Resolver) CompileBytes(data []byte) (*Schema, error) {
	doc, normalized, err := normalizeSchemaBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaParse, err)
	}

	loader, err := r.newSchemaLoader(doc)
	if err != nil {
		return nil, err
	}

	compiled, err := loader.Compile(gojsonschema.NewBytesLoader(normalized))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaResolution, err)
	}
	return &Schema{compiled: compiled}, nil
}

// CompileString compiles a schema document given as text.
func (r *Resolver) CompileString(text string) (*Schema, error) {
	return r.CompileBytes([]byte(text))
}

func (r *Resolver) newSchemaLoader(doc any) (*gojsonschema.SchemaLoader, error) {
	loader := gojsonschema.NewSchemaLoader()

	registered, err := registerFragments(loader, r.fragmentDirs)
	if err != nil {
		return nil, err
	}

	if r.retriever != nil {
		if err := r.preloadRemoteRefs(loader, doc, registered); err != nil {
			return nil, err
		}
	}

	return loader, nil
}

// preloadRemoteRefs fetches every http(s) $ref target reachable from doc
// and registers it with the loader so compilation never touches the
// network itself. Fetched schemas are scanned for further remote refs.
func (r *Resolver) preloadRemoteRefs(loader *gojsonschema.SchemaLoader, doc any, registered map[string]bool) error {
	ctx := context.Background()
	pending := collectRemoteRefs(doc, nil)

	for depth := 0; depth < maxRefDepth && len(pending) > 0; depth++ {
		var next []string
		for _, url := range pending {
			if registered[url] {
				continue
			}
			body, err := r.retriever.Fetch(ctx, url)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrSchemaRetrieval, url, err)
			}
			refDoc, normalized, err := normalizeSchemaBytes(body)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrSchemaParse, url, err)
			}
			if err := loader.AddSchema(url, gojsonschema.NewBytesLoader(normalized)); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrSchemaResolution, url, err)
			}
			registered[url] = true
			next = append(next, collectRemoteRefs(refDoc, nil)...)
		}
		pending = next
	}

	return nil
}

// normalizeSchemaBytes parses schema bytes as JSON first, then YAML, and
// returns both the decoded document and canonical JSON bytes.
func normalizeSchemaBytes(data []byte) (any, []byte, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return nil, nil, fmt.Errorf("not valid JSON (%v) or YAML (%v)", err, yerr)
		}
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode schema to JSON: %v", err)
	}
	return doc, normalized, nil
}

// collectRemoteRefs walks a decoded schema document and gathers every
// absolute http(s) $ref target.
func collectRemoteRefs(doc any, refs []string) []string {
	switch v := doc.(type) {
	case map[string]any:
		for key, value := range v {
			if key == "$ref" {
				if ref, ok := value.(string); ok && isRemoteRef(ref) {
					refs = append(refs, strings.SplitN(ref, "#", 2)[0])
					continue
				}
			}
			refs = collectRemoteRefs(value, refs)
		}
	case []any:
		for _, item := range v {
			refs = collectRemoteRefs(item, refs)
		}
	}
	return refs
}

func isRemoteRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
