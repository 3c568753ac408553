// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package query builds the SELECT statement for a validated shortcode.
// Values are concatenated as given; safety relies on the attribute denylist
// applied by the resolver.
package query

import (
	"strings"

	"sqb/cli/internal/shortcode"
)

// Select is the clause set of a shortcode query.
type Select struct {
	Cols    string
	Table   string
	Where   string
	OrderBy string
	Limit   string
}

// FromAttrs maps validated attributes onto a Select.
func FromAttrs(attrs shortcode.Attrs) Select {
	return Select{
		Cols:    attrs.Get(shortcode.AttrCols),
		Table:   attrs.Get(shortcode.AttrTable),
		Where:   attrs.Get(shortcode.AttrWhere),
		OrderBy: attrs.Get(shortcode.AttrOrderBy),
		Limit:   attrs.Get(shortcode.AttrLimit),
	}
}

// String renders the statement. Empty optional clauses are omitted.
func (s Select) String() string {
	var b strings.Builder
	b.WriteString("SELECT DISTINCT ")
	b.WriteString(s.Cols)
	b.WriteString(" FROM ")
	b.WriteString(s.Table)
	if s.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(s.Where)
	}
	if s.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(s.OrderBy)
	}
	if s.Limit != "" {
		b.WriteString(" LIMIT ")
		b.WriteString(s.Limit)
	}
	return b.String()
}

// Build returns the SELECT statement for attrs.
func Build(attrs shortcode.Attrs) string {
	return FromAttrs(attrs).String()
}
