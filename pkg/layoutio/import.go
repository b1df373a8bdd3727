package layoutio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/padring/pkg/errors"
)

// ReadJSON decodes a document from r and validates it.
//
// ReadJSON returns an INVALID_FORMAT error if:
//   - The JSON is malformed
//   - The document version is not [Version]
//   - The die or an instance has a non-positive size
//   - An instance or pin name cannot be parsed
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UnmarshalJSON decodes and validates a document.
func UnmarshalJSON(data []byte) (*Document, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportJSON reads a JSON file at path and returns the decoded document.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Validate checks the document for structural problems.
func (d *Document) Validate() error {
	if d.Version != Version {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported layout version %d (want %d)", d.Version, Version)
	}
	if d.Die.Width <= 0 || d.Die.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "die size %dx%d must be positive", d.Die.Width, d.Die.Height)
	}
	for _, inst := range d.Instances {
		if inst.Width <= 0 || inst.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "instance %s has size %dx%d", inst.Name, inst.Width, inst.Height)
		}
	}
	_, err := d.Layout()
	return err
}
