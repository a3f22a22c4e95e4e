package models

import (
	"bytes"

	"github.com/bytedance/sonic"
)

// Field is a single named value of a Record
type Field struct {
	Name  string
	Value interface{}
}

// Record is an ordered field name to value view of a ledger, used at the storage and transport boundary.
type Record []Field

// Get returns the value stored under name
func (r Record) Get(name string) (interface{}, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Names returns the field names in order
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// MarshalJSON encodes the record as a JSON object keeping field order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := sonic.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := sonic.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
