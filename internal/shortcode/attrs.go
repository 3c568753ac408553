// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shortcode

// Attr is one attribute as written by the content author.
type Attr struct {
	Name  string
	Value string
}

// RawAttrs holds attributes in the order they appear in the tag.
type RawAttrs []Attr

// Lookup returns the value of the last attribute called name.
// The host keeps the last value when a name repeats.
func (r RawAttrs) Lookup(name string) (string, bool) {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i].Name == name {
			return r[i].Value, true
		}
	}
	return "", false
}

// Names returns attribute names in author order without duplicates.
func (r RawAttrs) Names() []string {
	seen := make(map[string]struct{}, len(r))
	out := make([]string, 0, len(r))
	for _, a := range r {
		if _, ok := seen[a.Name]; ok {
			continue
		}
		seen[a.Name] = struct{}{}
		out = append(out, a.Name)
	}
	return out
}

// Attrs is a validated attribute set keyed by attribute name.
type Attrs map[string]string

// Get returns the value for name, or "" when absent.
func (a Attrs) Get(name string) string {
	return a[name]
}

// Table returns the resolved table expression.
func (a Attrs) Table() string { return a[AttrTable] }

// Wrapper returns the container element name.
func (a Attrs) Wrapper() string { return a[AttrWrapper] }

// IsTable reports whether results render as an HTML table.
func (a Attrs) IsTable() bool { return a[AttrWrapper] == "table" }

// IsList reports whether results render inside ul or ol.
func (a Attrs) IsList() bool {
	w := a[AttrWrapper]
	return w == "ul" || w == "ol"
}
