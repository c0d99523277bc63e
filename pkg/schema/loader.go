package schema

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Store keeps the forms parsed from schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]FormSchema
}

// LoadFS walks fsys and parses every JSON/YAML document it finds. Form ids
// must be unique across files and every form must pass Check. When fsys is
// nil or holds no documents, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]FormSchema)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}

		forms, err := ParseDocument(data, path)
		if err != nil {
			return err
		}
		return store.add(forms, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewStore builds a store from in-memory forms, applying the same checks as
// LoadFS.
func NewStore(forms map[string]FormSchema) (*Store, error) {
	store := &Store{forms: make(map[string]FormSchema, len(forms))}
	if err := store.add(forms, "memory"); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(forms map[string]FormSchema, source string) error {
	for rawID, form := range forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("schema: file %s defines an empty form id", source)
		}
		if _, exists := s.forms[id]; exists {
			return fmt.Errorf("schema: duplicate form %q (file %s)", id, source)
		}
		if err := Check(form); err != nil {
			return fmt.Errorf("schema: form %q (file %s): %w", id, source, err)
		}
		form = Sanitize(form)
		form.ID = id
		s.forms[id] = form
	}
	return nil
}

// Form returns the schema registered under id.
func (s *Store) Form(id string) (FormSchema, bool) {
	if s == nil {
		return FormSchema{}, false
	}
	form, ok := s.forms[strings.TrimSpace(id)]
	return form, ok
}

// IDs lists the loaded form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
