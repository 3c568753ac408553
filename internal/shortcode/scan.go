// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shortcode

import "strings"

// Match is one shortcode occurrence inside content.
// Start and End are byte offsets of the tag including any closing tag,
// excluding escape brackets.
type Match struct {
	Start    int
	End      int
	AttrText string
	Attrs    RawAttrs
	// Content is the text between an opening and a closing tag.
	Content  string
	Enclosed bool
	// Escaped is set for [[tag]] forms, which render as the literal tag.
	Escaped bool
}

// Text returns the matched tag text from content.
func (m Match) Text(content string) string {
	return content[m.Start:m.End]
}

// Bounds returns the byte range a replacement must cover.
// Escaped matches include their surrounding brackets.
func (m Match) Bounds() (int, int) {
	if m.Escaped {
		return m.Start - 1, m.End + 1
	}
	return m.Start, m.End
}

// Scan finds every occurrence of tag in content, in document order.
// It recognises [tag attrs], [tag attrs /] and [tag attrs]...[/tag].
// An opening tag encloses everything up to the next closing tag, even when
// another opening tag sits in between.
func Scan(content, tag string) []Match {
	if tag == "" {
		return nil
	}
	open := "[" + tag
	closing := "[/" + tag + "]"

	var out []Match
	for i := 0; i < len(content); {
		idx := strings.Index(content[i:], open)
		if idx < 0 {
			break
		}
		start := i + idx
		nameEnd := start + len(open)
		if nameEnd >= len(content) || isNameByte(content[nameEnd]) {
			i = start + 1
			continue
		}

		attrEnd, selfClosing, ok := findTagEnd(content, nameEnd)
		if !ok {
			i = start + 1
			continue
		}

		m := Match{Start: start, AttrText: strings.TrimSpace(content[nameEnd:attrEnd])}
		if selfClosing {
			m.End = attrEnd + 2
		} else {
			m.End = attrEnd + 1
			if c := strings.Index(content[m.End:], closing); c >= 0 {
				m.Content = content[m.End : m.End+c]
				m.Enclosed = true
				m.End += c + len(closing)
			}
		}
		m.Attrs = Parse(m.AttrText)
		m.Escaped = start > 0 && content[start-1] == '[' && m.End < len(content) && content[m.End] == ']'

		out = append(out, m)
		i = m.End
	}
	return out
}

// findTagEnd returns the offset of the "]" or "/]" that ends an opening tag.
func findTagEnd(content string, from int) (int, bool, bool) {
	for j := from; j < len(content); j++ {
		switch content[j] {
		case ']':
			return j, false, true
		case '/':
			if j+1 < len(content) && content[j+1] == ']' {
				return j, true, true
			}
		}
	}
	return 0, false, false
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Replace rewrites every occurrence of tag in content using fn.
// Escaped occurrences are replaced by their literal tag text without calling fn.
func Replace(content, tag string, fn func(Match) (string, error)) (string, error) {
	matches := Scan(content, tag)
	if len(matches) == 0 {
		return content, nil
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, m := range matches {
		from, to := m.Bounds()
		b.WriteString(content[last:from])
		if m.Escaped {
			b.WriteString(m.Text(content))
		} else {
			out, err := fn(m)
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		}
		last = to
	}
	b.WriteString(content[last:])
	return b.String(), nil
}

// Strip removes every occurrence of tag, escaped or not, from text.
// It is applied to user-submitted comments so that commenters cannot
// smuggle live queries into rendered pages. Removal repeats until no tag
// is left, so a tag split around another one cannot reassemble.
func Strip(text, tag string) string {
	for {
		matches := Scan(text, tag)
		if len(matches) == 0 {
			return text
		}
		var b strings.Builder
		b.Grow(len(text))
		last := 0
		for _, m := range matches {
			from, to := m.Bounds()
			b.WriteString(text[last:from])
			last = to
		}
		b.WriteString(text[last:])
		text = b.String()
	}
}
