package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"
)

// ReadPage decodes page document. JSON documents are accepted as well since
// they are valid YAML.
func ReadPage(r io.Reader) (*Page, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	page := &Page{}
	if err := dec.Decode(page); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty page document")
		}
		return nil, fmt.Errorf("failed to decode page document: %w", err)
	}
	if err := page.check(); err != nil {
		return nil, err
	}
	return page, nil
}

func (p *Page) check() error {
	for i, b := range p.Blocks {
		if b == nil {
			return fmt.Errorf("page %d: block %d is empty", p.Number, i)
		}
	}
	return nil
}

// WritePage encodes page document in requested format ("yaml" or "json").
func WritePage(w io.Writer, page *Page, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(page); err != nil {
			return fmt.Errorf("failed to encode page %d: %w", page.Number, err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(page); err != nil {
			return fmt.Errorf("failed to encode page %d: %w", page.Number, err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to finish page %d: %w", page.Number, err)
		}
	}
	return nil
}
