// Package content loads the personal-training page from YAML documents,
// one per page language.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gymportal/internal/domain/training"
)

//go:embed personal_training.*.yaml
var embedded embed.FS

// DefaultLang is used when a language has no document of its own.
const DefaultLang = "en"

// Library holds validated content per language.
type Library struct {
	byLang map[string]*training.Content
}

// Load parses the embedded documents. When dir is non-empty, files named
// personal_training.<lang>.yaml in dir replace the embedded ones.
// POST: every loaded document has passed Validate; DefaultLang is present
func Load(dir string) (*Library, error) {
	lib := &Library{byLang: map[string]*training.Content{}}
	if err := lib.loadFS(embedded); err != nil {
		return nil, err
	}
	if dir != "" {
		if err := lib.loadFS(os.DirFS(dir)); err != nil {
			return nil, err
		}
	}
	if _, ok := lib.byLang[DefaultLang]; !ok {
		return nil, fmt.Errorf("personal training content: missing %q document", DefaultLang)
	}
	return lib, nil
}

func (l *Library) loadFS(fsys fs.FS) error {
	matches, err := fs.Glob(fsys, "personal_training.*.yaml")
	if err != nil {
		return err
	}
	for _, name := range matches {
		lang := strings.TrimSuffix(strings.TrimPrefix(name, "personal_training."), ".yaml")
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		c, err := Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(name), err)
		}
		l.byLang[lang] = c
	}
	return nil
}

// Parse decodes and validates one document. Unknown keys are rejected.
func Parse(data []byte) (*training.Content, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var c training.Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// For returns the document for lang, falling back to DefaultLang.
func (l *Library) For(lang string) *training.Content {
	if c, ok := l.byLang[lang]; ok {
		return c
	}
	return l.byLang[DefaultLang]
}
