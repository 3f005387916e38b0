package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a dataset file. Both JSON and YAML are accepted.
func Load(fs afero.Fs, path string) (*Dataset, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("dataset: load: %w", err)
	}

	ds, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("dataset: load %s: %w", path, err)
	}
	return ds, nil
}

// Decode parses and validates a dataset document.
func Decode(data []byte) (*Dataset, error) {
	var ds Dataset

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalid("", ErrNoLineColumns)
		}
		return nil, fmt.Errorf("dataset: decode: %w", err)
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}
