// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package shortcode implements the attribute side of the shortcode query builder.
// It defines the fixed attribute schema, parses attribute text the way the host
// content system does, validates raw attributes against the schema and a keyword
// denylist, and locates or strips shortcode tags inside content.
//
// The package does not talk to a database and does not render HTML; see
// internal/query and internal/render for those steps.
package shortcode

// DefaultTag is the shortcode tag name recognised in content.
const DefaultTag = "shortcode-query"

// PrefixPlaceholder is replaced by the configured table prefix in attribute values.
const PrefixPlaceholder = "#_"

// Attribute names recognised by the shortcode.
const (
	AttrTable          = "table"
	AttrCols           = "cols"
	AttrWhere          = "where"
	AttrOrderBy        = "order-by"
	AttrLimit          = "limit"
	AttrWrapper        = "wrapper"
	AttrElementWrapper = "element-wrapper"
	AttrClass          = "class"
	AttrFormat         = "format"
	AttrLink           = "link"
	AttrTableHead      = "table-head"
	AttrNoDataMsg      = "no-data-msg"
)

// Definition describes one recognised attribute.
type Definition struct {
	Name        string
	Default     string
	Description string
}

// Schema is the ordered set of recognised attributes.
// Iteration order drives defaulting and the help panel.
type Schema struct {
	defs  []Definition
	index map[string]int
}

// NewSchema builds a schema from definitions in the given order.
// Later duplicates replace earlier definitions in place.
func NewSchema(defs ...Definition) *Schema {
	s := &Schema{index: make(map[string]int, len(defs))}
	for _, d := range defs {
		if i, ok := s.index[d.Name]; ok {
			s.defs[i] = d
			continue
		}
		s.index[d.Name] = len(s.defs)
		s.defs = append(s.defs, d)
	}
	return s
}

var defaultSchema = NewSchema(
	Definition{AttrTable, "", `Tablename in database. You can use "#_" as placeholder for table prefixes (e.g. #_posts)`},
	Definition{AttrCols, "*", "Table columns to select"},
	Definition{AttrWhere, "", `Conditions. If you use table names, you can use "#_" as placeholder for table prefixes`},
	Definition{AttrOrderBy, "", "Sorting column(s)"},
	Definition{AttrLimit, "", "Limit rows (e.g. 10 or 5,10)"},
	Definition{AttrWrapper, "div", `HTML Container: "ul", "ol", "table" or "div" - div renders rows in p-Tags, separated by comma`},
	Definition{AttrElementWrapper, "p", `HTML Container for list elements: "p", "li" or "div"`},
	Definition{AttrClass, "shortcode-query-builder", "Class name to be added to wrapper element"},
	Definition{AttrFormat, "", "String to format column values, see php sprintf() for syntax. For tables, definitions are separated by | (pipe)"},
	Definition{AttrLink, "", `URL pattern with {placeholders}. Allowed placeholders are all fields available in attr "cols"`},
	Definition{AttrTableHead, "", "For tables only: Labels for table heading, separated by | (pipe)"},
	Definition{AttrNoDataMsg, "", "Message to display, if query did not return any results"},
)

// DefaultSchema returns the schema of the shortcode-query tag.
func DefaultSchema() *Schema {
	return defaultSchema
}

// Definitions returns a copy of the definitions in schema order.
func (s *Schema) Definitions() []Definition {
	out := make([]Definition, len(s.defs))
	copy(out, s.defs)
	return out
}

// Names returns the attribute names in schema order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.defs))
	for i, d := range s.defs {
		out[i] = d.Name
	}
	return out
}

// Lookup returns the definition for name.
func (s *Schema) Lookup(name string) (Definition, bool) {
	i, ok := s.index[name]
	if !ok {
		return Definition{}, false
	}
	return s.defs[i], true
}

// Has reports whether name is a recognised attribute.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of recognised attributes.
func (s *Schema) Len() int { return len(s.defs) }

// Defaults returns an attribute set holding every default value.
func (s *Schema) Defaults() Attrs {
	out := make(Attrs, len(s.defs))
	for _, d := range s.defs {
		out[d.Name] = d.Default
	}
	return out
}
