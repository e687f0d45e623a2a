package catalog

import (
	"errors"
	"fmt"
)

const catalogEntryErrorTemplateConstant = "catalog entry %d: %w"

// ErrEmptyCatalog indicates that no repositories were configured.
var ErrEmptyCatalog = errors.New("repository catalog is empty")

// Catalog is an ordered, possibly duplicated, sequence of repository references.
type Catalog struct {
	entries []RepositoryRef
}

// New constructs a catalog from already parsed references, preserving their order.
func New(references []RepositoryRef) Catalog {
	return Catalog{entries: append([]RepositoryRef(nil), references...)}
}

// FromStrings parses every "organization/repository" value in order.
func FromStrings(values []string) (Catalog, error) {
	references := make([]RepositoryRef, 0, len(values))
	for index, value := range values {
		reference, parseError := ParseRepositoryRef(value)
		if parseError != nil {
			return Catalog{}, fmt.Errorf(catalogEntryErrorTemplateConstant, index+1, parseError)
		}
		references = append(references, reference)
	}
	return Catalog{entries: references}, nil
}

// Entries returns a copy of the references in processing order.
func (catalog Catalog) Entries() []RepositoryRef {
	return append([]RepositoryRef(nil), catalog.entries...)
}

// Len reports the number of entries.
func (catalog Catalog) Len() int {
	return len(catalog.entries)
}

// Validate ensures the catalog holds at least one well-formed entry.
func (catalog Catalog) Validate() error {
	if len(catalog.entries) == 0 {
		return ErrEmptyCatalog
	}
	for index, entry := range catalog.entries {
		if _, parseError := ParseRepositoryRef(entry.String()); parseError != nil {
			return fmt.Errorf(catalogEntryErrorTemplateConstant, index+1, parseError)
		}
	}
	return nil
}
