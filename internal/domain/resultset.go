package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedResultSet is returned when decoding a result set document
// that is not a JSON object of records.
var ErrMalformedResultSet = errors.New("malformed result set document")

// ResultSet is an insertion-ordered mapping from skill name to Record.
// It marshals to a JSON object whose keys appear in insertion order.
type ResultSet struct {
	names   []string
	records map[string]Record
}

// NewResultSet creates an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{records: make(map[string]Record)}
}

// Add stores a record under name. Re-adding a name replaces the record in
// its original position.
func (rs *ResultSet) Add(name string, rec Record) {
	if _, exists := rs.records[name]; !exists {
		rs.names = append(rs.names, name)
	}

	rs.records[name] = rec
}

// Get returns the record stored under name.
func (rs *ResultSet) Get(name string) (Record, bool) {
	rec, ok := rs.records[name]
	return rec, ok
}

// Names returns the stored names in insertion order.
func (rs *ResultSet) Names() []string {
	names := make([]string, len(rs.names))
	copy(names, rs.names)

	return names
}

// Len returns the number of stored records.
func (rs *ResultSet) Len() int {
	return len(rs.names)
}

// MarshalJSON encodes the result set as a JSON object with keys in
// insertion order.
func (rs *ResultSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, name := range rs.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(rs.records[name])
		if err != nil {
			return nil, fmt.Errorf("marshal record %q: %w", name, err)
		}
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of records, preserving the key
// order of the document.
func (rs *ResultSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read object start: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrMalformedResultSet
	}

	rs.names = nil
	rs.records = make(map[string]Record)

	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return fmt.Errorf("read key: %w", keyErr)
		}

		name, ok := keyTok.(string)
		if !ok {
			return ErrMalformedResultSet
		}

		var rec Record
		if decodeErr := dec.Decode(&rec); decodeErr != nil {
			return fmt.Errorf("decode record %q: %w", name, decodeErr)
		}

		rs.Add(name, rec)
	}

	if _, err = dec.Token(); err != nil {
		return fmt.Errorf("read object end: %w", err)
	}

	return nil
}
