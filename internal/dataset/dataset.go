// Package dataset holds the column-oriented chart data model.
//
// A dataset is a list of columns sharing one x axis. Each column starts with
// its key followed by the samples; exactly one column carries the x values
// (timestamps in Unix milliseconds) and every other column is a "line" series.
package dataset

import (
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind is the type of a column.
type Kind string

const (
	KindLine Kind = "line"
	KindX    Kind = "x"
)

// Column is one named sequence of samples.
type Column struct {
	Key    string
	Values []float64
}

// Len returns the length of the column including its key, matching the
// on-disk array form.
func (c Column) Len() int {
	return len(c.Values) + 1
}

// UnmarshalYAML decodes the mixed array form ["key", v1, v2, ...].
//
// JSON documents decode through the same path since yaml.v3 accepts JSON.
func (c *Column) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("dataset: column: expected a sequence, got line %d", node.Line)
	}
	if len(node.Content) == 0 {
		return invalid("", ErrEmptyKey)
	}

	if err := node.Content[0].Decode(&c.Key); err != nil {
		return fmt.Errorf("dataset: column key: %w", err)
	}

	c.Values = make([]float64, 0, len(node.Content)-1)
	for _, n := range node.Content[1:] {
		var v float64
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("dataset: column %q: line %d: %w", c.Key, n.Line, err)
		}
		c.Values = append(c.Values, v)
	}
	return nil
}

// MarshalYAML encodes the column back to its mixed array form.
func (c Column) MarshalYAML() (any, error) {
	out := make([]any, 0, c.Len())
	out = append(out, c.Key)
	for _, v := range c.Values {
		out = append(out, v)
	}
	return out, nil
}

// Dataset is the immutable input of a chart.
type Dataset struct {
	Columns []Column          `yaml:"columns"`
	Types   map[string]Kind   `yaml:"types"`
	Colors  map[string]string `yaml:"colors"`
	Names   map[string]string `yaml:"names,omitempty"`
}

// Lines returns the "line" columns in dataset order.
func (d *Dataset) Lines() []Column {
	lines := make([]Column, 0, len(d.Columns))
	for _, col := range d.Columns {
		if d.Types[col.Key] == KindLine {
			lines = append(lines, col)
		}
	}
	return lines
}

// X returns the shared x column.
func (d *Dataset) X() (Column, bool) {
	for _, col := range d.Columns {
		if kind, ok := d.Types[col.Key]; ok && kind != KindLine {
			return col, true
		}
	}
	return Column{}, false
}

// SampleCount is the number of samples per column, keys excluded.
func (d *Dataset) SampleCount() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// Color returns the configured color of a series.
func (d *Dataset) Color(key string) string {
	return d.Colors[key]
}

// Name returns the display name of a series, or its key.
func (d *Dataset) Name(key string) string {
	if name, ok := d.Names[key]; ok && name != "" {
		return name
	}
	return key
}

// Timestamp converts the i-th x value to a time.
func (d *Dataset) Timestamp(i int) (time.Time, bool) {
	x, ok := d.X()
	if !ok || i < 0 || i >= len(x.Values) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(x.Values[i])), true
}

// Validate checks the structural invariants a renderer relies on.
func (d *Dataset) Validate() error {
	if len(d.Columns) == 0 {
		return invalid("", ErrNoLineColumns)
	}

	seen := make(map[string]bool, len(d.Columns))
	var lines, xs int
	length := d.Columns[0].Len()
	for _, col := range d.Columns {
		if col.Key == "" {
			return invalid("", ErrEmptyKey)
		}
		seen[col.Key] = true

		kind, ok := d.Types[col.Key]
		switch {
		case !ok:
			return invalid(col.Key, ErrMissingType)
		case kind == KindLine:
			lines++
			if d.Colors[col.Key] == "" {
				return invalid(col.Key, ErrMissingColor)
			}
		default:
			xs++
		}

		if col.Len() != length {
			return invalid(col.Key, ErrLengthMismatch)
		}
		for _, v := range col.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return invalid(col.Key, ErrNotFinite)
			}
		}
	}

	for key := range d.Types {
		if !seen[key] {
			return invalid(key, ErrUnknownColumn)
		}
	}

	switch {
	case lines == 0:
		return invalid("", ErrNoLineColumns)
	case xs == 0:
		return invalid("", ErrNoXColumn)
	case xs > 1:
		return invalid("", ErrMultipleX)
	case length < 3:
		return invalid("", ErrTooFewSamples)
	}
	return nil
}
