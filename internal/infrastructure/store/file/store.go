// Package file reads the canonical ingredient catalog from a JSON file.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
)

// Store is a domain.IngredientStore backed by a JSON document. The document is
// an array whose entries are either bare names or objects with name, category
// and expiry fields. Entries are returned in file order.
type Store struct {
	path string
}

// NewStore creates a store reading path on every ListIngredients call.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the catalog file path.
func (s *Store) Path() string {
	return s.path
}

// ListIngredients reads and decodes the catalog file.
func (s *Store) ListIngredients(ctx context.Context) ([]domain.CanonicalIngredient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	ingredients, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding catalog file %s: %w", s.path, err)
	}
	return ingredients, nil
}

func decode(data []byte) ([]domain.CanonicalIngredient, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	out := make([]domain.CanonicalIngredient, 0, len(raw))
	for i, entry := range raw {
		entry = bytes.TrimSpace(entry)
		if len(entry) > 0 && entry[0] == '"' {
			var name string
			if err := json.Unmarshal(entry, &name); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			out = append(out, domain.CanonicalIngredient{Name: name})
			continue
		}

		var ingredient domain.CanonicalIngredient
		if err := json.Unmarshal(entry, &ingredient); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, ingredient)
	}
	return out, nil
}
