// loader.go — Load cards.json / cards.toml documents.
package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultOutput is the output directory used when a document does not
// name one, relative to the document.
const DefaultOutput = "assets/cards"

// LoadDocument reads, validates and parses a card document. The format is
// inferred from the file extension: ".toml" is TOML, anything else is JSON.
// The returned document has defaults applied and its Output resolved
// relative to the document's directory.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := ParseDocument(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if doc.Output == "" {
		doc.Output = DefaultOutput
	}
	if !filepath.IsAbs(doc.Output) {
		doc.Output = filepath.Join(filepath.Dir(path), doc.Output)
	}
	return doc, nil
}

// ParseDocument validates and parses document data in the format
// indicated by ext (".json" or ".toml").
func ParseDocument(data []byte, ext string) (*Document, error) {
	unmarshal := json.Unmarshal
	if ext == ".toml" {
		unmarshal = toml.Unmarshal
	}

	var raw map[string]any
	if err := unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if paths, err := Validate(raw); err != nil {
		return nil, fmt.Errorf("invalid document: %w", &ValidationError{Paths: paths, Err: err})
	}

	var doc Document
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if err := CheckIDs(doc.Cards); err != nil {
		return nil, err
	}

	applyDefaults(&doc)
	return &doc, nil
}
