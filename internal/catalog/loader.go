package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	catalogPathRequiredMessageConstant = "catalog file path is required"
	catalogReadErrorTemplateConstant   = "unable to read catalog %s: %w"
	catalogParseErrorTemplateConstant  = "unable to parse catalog %s: %w"
)

// ErrCatalogReaderNotConfigured indicates the loader was constructed without a file reader.
var ErrCatalogReaderNotConfigured = errors.New("catalog file reader not configured")

// FileReader reads catalog files.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// catalogDocument is the YAML layout of a catalog file:
//
//	repositories:
//	  - chaoss/grimoirelab-perceval
type catalogDocument struct {
	Repositories []string `yaml:"repositories"`
}

// Loader reads catalogs from YAML files.
type Loader struct {
	reader FileReader
}

// NewLoader constructs a Loader.
func NewLoader(reader FileReader) (*Loader, error) {
	if reader == nil {
		return nil, ErrCatalogReaderNotConfigured
	}
	return &Loader{reader: reader}, nil
}

// LoadFile reads and parses the catalog stored at path.
func (loader *Loader) LoadFile(path string) (Catalog, error) {
	trimmedPath := strings.TrimSpace(path)
	if len(trimmedPath) == 0 {
		return Catalog{}, errors.New(catalogPathRequiredMessageConstant)
	}

	contents, readError := loader.reader.ReadFile(trimmedPath)
	if readError != nil {
		return Catalog{}, fmt.Errorf(catalogReadErrorTemplateConstant, trimmedPath, readError)
	}

	parsedCatalog, parseError := Decode(bytes.NewReader(contents))
	if parseError != nil {
		return Catalog{}, fmt.Errorf(catalogParseErrorTemplateConstant, trimmedPath, parseError)
	}
	return parsedCatalog, nil
}

// Decode parses a YAML catalog document.
func Decode(reader io.Reader) (Catalog, error) {
	var document catalogDocument
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if decodeError := decoder.Decode(&document); decodeError != nil {
		if errors.Is(decodeError, io.EOF) {
			return Catalog{}, ErrEmptyCatalog
		}
		return Catalog{}, decodeError
	}

	parsedCatalog, parseError := FromStrings(document.Repositories)
	if parseError != nil {
		return Catalog{}, parseError
	}
	if validationError := parsedCatalog.Validate(); validationError != nil {
		return Catalog{}, validationError
	}
	return parsedCatalog, nil
}
