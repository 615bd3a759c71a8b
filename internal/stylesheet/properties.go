package stylesheet

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Properties is a CSS declaration map that remembers insertion order.
// Overwriting an existing property keeps its original position and
// replaces the value, so iteration order is the order in which each
// property was first seen.
//
// The zero value is ready to use.
type Properties struct {
	keys   []string
	values map[string]string
}

// NewProperties returns an empty property map.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]string)}
}

// Set writes a property value. Later writes win.
func (p *Properties) Set(name, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, exists := p.values[name]; !exists {
		p.keys = append(p.keys, name)
	}
	p.values[name] = value
}

// Get returns the value of a property.
func (p *Properties) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[name]
	return v, ok
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns property names in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Each calls fn for every property in insertion order.
func (p *Properties) Each(fn func(name, value string)) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		fn(k, p.values[k])
	}
}

// Merge writes every property of other into p, in other's order.
func (p *Properties) Merge(other *Properties) {
	other.Each(p.Set)
}

// Clone returns an independent copy.
func (p *Properties) Clone() *Properties {
	c := NewProperties()
	c.Merge(p)
	return c
}

// Map returns the properties as a plain map (order is lost).
func (p *Properties) Map() map[string]string {
	m := make(map[string]string, p.Len())
	p.Each(func(name, value string) {
		m[name] = value
	})
	return m
}

// String formats the properties as a declaration block body:
// "color: red; width: 100%".
func (p *Properties) String() string {
	parts := make([]string, 0, p.Len())
	p.Each(func(name, value string) {
		parts = append(parts, name+": "+value)
	})
	return strings.Join(parts, "; ")
}

// MarshalJSON encodes the properties as a JSON object, keeping order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	i := 0
	p.Each(func(name, value string) {
		if err != nil {
			return
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		var k, v []byte
		if k, err = json.Marshal(name); err != nil {
			return
		}
		if v, err = json.Marshal(value); err != nil {
			return
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
