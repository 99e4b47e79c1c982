// Package serial provides the tagged property bag actions serialize into
// and the codecs used to persist it.
package serial

import (
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// Property is one named string value of a Node.
type Property struct {
	Name  string
	Value string
}

// Node is a tagged bag of named string properties. Setting an existing
// name replaces its value in place, so insertion order is stable.
type Node struct {
	Tag   string
	props []Property
}

// NewNode creates an empty node with the given tag.
func NewNode(tag string) *Node {
	return &Node{Tag: tag}
}

// Set stores value under name.
func (n *Node) Set(name, value string) {
	for i := range n.props {
		if n.props[i].Name == name {
			n.props[i].Value = value
			return
		}
	}
	n.props = append(n.props, Property{Name: name, Value: value})
}

// Lookup returns the value stored under name.
func (n *Node) Lookup(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, p := range n.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Get returns the value stored under name, or "" when absent.
func (n *Node) Get(name string) string {
	v, _ := n.Lookup(name)
	return v
}

// Len returns the number of properties.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.props)
}

// Properties returns a copy of the properties in insertion order.
func (n *Node) Properties() []Property {
	if n == nil {
		return nil
	}
	out := make([]Property, len(n.props))
	copy(out, n.props)
	return out
}

// Equal reports whether both nodes carry the same tag and the same
// name/value pairs, regardless of order.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Tag != o.Tag || len(n.props) != len(o.props) {
		return false
	}
	for _, p := range n.props {
		v, ok := o.Lookup(p.Name)
		if !ok || v != p.Value {
			return false
		}
	}
	return true
}

// wireNode is the encoded shape shared by the JSON and YAML codecs.
type wireNode struct {
	Tag        string            `json:"tag" yaml:"tag"`
	Properties map[string]string `json:"properties" yaml:"properties"`
}

func (n *Node) toWire() wireNode {
	w := wireNode{Tag: n.Tag, Properties: make(map[string]string, len(n.props))}
	for _, p := range n.props {
		w.Properties[p.Name] = p.Value
	}
	return w
}

func (n *Node) fromWire(w wireNode) {
	n.Tag = w.Tag
	n.props = n.props[:0]
	names := make([]string, 0, len(w.Properties))
	for name := range w.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n.props = append(n.props, Property{Name: name, Value: w.Properties[name]})
	}
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toWire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	n.fromWire(w)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (interface{}, error) {
	return n.toWire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var w wireNode
	if err := value.Decode(&w); err != nil {
		return err
	}
	n.fromWire(w)
	return nil
}
