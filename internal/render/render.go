// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package render turns shortcode query results into HTML.
//
// A result renders as a table when the wrapper is "table", as list items for
// ul and ol, and as element-wrapper blocks for any other container. Column
// values are written as returned by the database; only table headings and
// help text are escaped. Formatting problems never fail a render: they show
// up inline next to the affected cell or row.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"sqb/cli/internal/shortcode"
	"sqb/cli/internal/sqlexec"
)

// FormatJSON is the format value that renders each row as a JSON object.
const FormatJSON = "json"

// Render produces the HTML for one shortcode result.
func Render(res *sqlexec.Result, attrs shortcode.Attrs) string {
	class := attrs.Get(shortcode.AttrClass)
	if res.Empty() {
		return `<div class="` + class + ` no-data-msg">` + attrs.Get(shortcode.AttrNoDataMsg) + `</div>`
	}

	wrapper := attrs.Wrapper()
	var b strings.Builder
	b.WriteString("<" + wrapper + ` class="` + class + `">`)

	if head := attrs.Get(shortcode.AttrTableHead); attrs.IsTable() && set(head) {
		b.WriteString(Header(res.Columns, head))
	}
	for _, row := range res.Rows {
		b.WriteString(Row(res.Columns, row, attrs))
	}

	b.WriteString("</" + wrapper + ">")
	return b.String()
}

// Header renders the table heading row. Missing headings are filled from the
// column names starting one past the number missing, so the row can come out
// shorter than the column count.
func Header(cols []string, labels string) string {
	headings := Fit(splitTrim(labels), len(cols), func(missing int) []string {
		if missing+1 >= len(cols) {
			return nil
		}
		return cols[missing+1:]
	})

	var b strings.Builder
	b.WriteString("<tr>")
	for _, h := range headings {
		b.WriteString("<th>" + Escape(h) + "</th>")
	}
	b.WriteString("</tr>")
	return b.String()
}

// ColumnFormats splits a pipe-separated format into one format per column.
// Columns without a format get %s.
func ColumnFormats(cols []string, format string) []string {
	return Fit(splitTrim(format), len(cols), Repeat("%s"))
}

// Row renders a single result row for the configured wrapper.
func Row(cols []string, row []any, attrs shortcode.Attrs) string {
	if attrs.IsTable() {
		return tableRow(cols, row, attrs.Get(shortcode.AttrFormat))
	}
	return listRow(cols, row, attrs)
}

func tableRow(cols []string, row []any, format string) string {
	formats := ColumnFormats(cols, format)

	var b strings.Builder
	b.WriteString("<tr>")
	for i, col := range cols {
		v := valueAt(row, i)
		if falsy(v) {
			v = ""
		}
		cell, err := Sprintf(formats[i], v)
		switch {
		case err == nil:
			b.WriteString("<td>" + cell + "</td>")
		case isArgCount(err):
			b.WriteString("<td>ERROR: Format string for field <i>" + col + "</i> has more than 1 placeholders.</td>")
		default:
			b.WriteString("<td>ERROR: Format string for field <i>" + col + "</i> is not valid.</td>")
		}
	}
	b.WriteString("</tr>")
	return b.String()
}

func listRow(cols []string, row []any, attrs shortcode.Attrs) string {
	element := attrs.Get(shortcode.AttrElementWrapper)
	if attrs.IsList() {
		element = "li"
	}

	format := attrs.Get(shortcode.AttrFormat)
	var content string
	switch {
	case format == FormatJSON:
		content = jsonRow(cols, row)
	case set(format):
		content = formatRow(row, format)
	default:
		parts := make([]string, len(cols))
		for i := range cols {
			parts[i] = toString(valueAt(row, i))
		}
		content = strings.Join(parts, ", ")
	}

	// Link placeholders are not substituted; the link is used as written.
	if link := attrs.Get(shortcode.AttrLink); set(link) {
		content = `<a href="` + link + `">` + content + `</a>`
	}
	return "<" + element + ">" + content + "</" + element + ">"
}

// formatRow applies a single list format to all row values. The number of
// % characters decides how many values the format takes.
func formatRow(row []any, format string) string {
	want := strings.Count(format, "%")
	values := Fit(row, want, Repeat[any]("?"))

	out, err := Sprintf(format, values...)
	mismatch := len(row) != want
	if err != nil {
		if !isArgCount(err) {
			return " - ERROR: Format string (" + format + ") is not valid."
		}
		out, mismatch = "", true
	}
	if mismatch {
		out += " - ERROR: Format string (" + format + ") has not correct number of placeholders."
	}
	return out
}

// jsonRow encodes a row as a JSON object with keys in column order.
func jsonRow(cols []string, row []any) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, col := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(jsonValue(col))
		b.WriteByte(':')
		b.WriteString(jsonValue(valueAt(row, i)))
	}
	b.WriteByte('}')
	return b.String()
}

func jsonValue(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		buf.Reset()
		_ = enc.Encode(toString(v))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func valueAt(row []any, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}

func splitTrim(labels string) []string {
	if !set(labels) {
		return nil
	}
	parts := strings.Split(labels, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isArgCount(err error) bool {
	var ace *ArgCountError
	return errors.As(err, &ace)
}
