package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

type Annotation struct {
	Entry       string `json:"entry" yaml:"entry"`
	Description string `json:"description" yaml:"description"`
}

// Item is one task record as exported by the store. Fields the ordering code
// does not interpret are carried through untouched in Fields.
type Item struct {
	UUID        string       `json:"uuid" yaml:"uuid"`
	ID          *int         `json:"id,omitempty" yaml:"-"`
	Description string       `json:"description" yaml:"description"`
	Entry       string       `json:"entry,omitempty" yaml:"entry,omitempty"`
	Modified    string       `json:"modified,omitempty" yaml:"modified,omitempty"`
	Status      Status       `json:"status" yaml:"status"`
	Urgency     *float64     `json:"urgency,omitempty" yaml:"-"`
	Tags        []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`

	// Fields holds user-defined attributes (taskwarrior UDAs), sortOrder among them.
	Fields map[string]any `json:"-" yaml:",inline"`
}

var knownKeys = map[string]bool{
	"uuid":        true,
	"id":          true,
	"description": true,
	"entry":       true,
	"modified":    true,
	"status":      true,
	"urgency":     true,
	"tags":        true,
	"annotations": true,
}

// UnmarshalJSON decodes the known keys and collects every other key into
// Fields. Numbers are kept as json.Number so the stored text survives.
func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if knownKeys[k] {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		var val any
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("decoding field %q: %w", k, err)
		}
		if p.Fields == nil {
			p.Fields = make(map[string]any)
		}
		p.Fields[k] = val
	}

	*it = Item(p)
	return nil
}

// MarshalJSON flattens Fields back next to the known keys.
func (it Item) MarshalJSON() ([]byte, error) {
	type plain Item
	base, err := json.Marshal(plain(it))
	if err != nil {
		return nil, err
	}
	if len(it.Fields) == 0 {
		return base, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range it.Fields {
		if knownKeys[k] {
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", k, err)
		}
		merged[k] = b
	}
	return json.Marshal(merged)
}

func (it *Item) HasTag(tag string) bool {
	return slices.Contains(it.Tags, tag)
}

// Field returns a user-defined attribute. A present key with a null value
// still reports ok.
func (it *Item) Field(name string) (any, bool) {
	v, ok := it.Fields[name]
	return v, ok
}

func (it *Item) HasField(name string) bool {
	_, ok := it.Fields[name]
	return ok
}

func (it *Item) SetField(name string, value any) {
	if it.Fields == nil {
		it.Fields = make(map[string]any)
	}
	it.Fields[name] = value
}

func (it *Item) ClearField(name string) {
	delete(it.Fields, name)
}

// ShortID returns the working-set alias as a string. Taskwarrior reports
// id 0 for tasks outside the working set, which counts as no alias.
func (it *Item) ShortID() (string, bool) {
	if it.ID == nil || *it.ID == 0 {
		return "", false
	}
	return strconv.Itoa(*it.ID), true
}

func (it *Item) Validate() error {
	if it.UUID == "" {
		return fmt.Errorf("task uuid is required")
	}
	if it.Description == "" {
		return fmt.Errorf("task description is required")
	}
	return ValidateStatus(it.Status)
}
