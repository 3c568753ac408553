// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shortcode

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reAttr = regexp.MustCompile(`([\w-]+)\s*=\s*"([^"]*)"(?:\s|$)|([\w-]+)\s*=\s*'([^']*)'(?:\s|$)|([\w-]+)\s*=\s*([^\s'"]+)(?:\s|$)|"([^"]*)"(?:\s|$)|'([^']*)'(?:\s|$)|(\S+)(?:\s|$)`)
	// Values containing "<" must consist of complete tags only.
	reClosedHTML = regexp.MustCompile(`^[^<]*(?:<[^>]*>[^<]*)*$`)
	reOddSpace   = regexp.MustCompile("[\u00a0\u200b]+")
)

// Parse splits shortcode attribute text into attributes, following the host
// content system: name="v", name='v', name=v and bare positional values.
// Positional values are named by their index ("0", "1", ...).
// Values holding unclosed HTML elements are blanked.
func Parse(text string) RawAttrs {
	text = reOddSpace.ReplaceAllString(text, " ")

	var out RawAttrs
	positional := 0
	for _, m := range reAttr.FindAllStringSubmatch(text, -1) {
		switch {
		case m[1] != "":
			out = append(out, Attr{Name: m[1], Value: stripCSlashes(m[2])})
		case m[3] != "":
			out = append(out, Attr{Name: m[3], Value: stripCSlashes(m[4])})
		case m[5] != "":
			out = append(out, Attr{Name: m[5], Value: stripCSlashes(m[6])})
		default:
			var v string
			switch {
			case m[7] != "":
				v = m[7]
			case m[8] != "":
				v = m[8]
			default:
				v = m[9]
			}
			out = append(out, Attr{Name: strconv.Itoa(positional), Value: stripCSlashes(v)})
			positional++
		}
	}

	for i := range out {
		if strings.Contains(out[i].Value, "<") && !reClosedHTML.MatchString(out[i].Value) {
			out[i].Value = ""
		}
	}
	return out
}

// stripCSlashes removes backslash escapes, decoding C-style sequences.
func stripCSlashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch c = s[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'v':
			b.WriteByte('\v')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'x':
			j := i + 1
			for j < len(s) && j < i+3 && isHexDigit(s[j]) {
				j++
			}
			if j == i+1 {
				b.WriteByte('x')
				continue
			}
			n, _ := strconv.ParseUint(s[i+1:j], 16, 8)
			b.WriteByte(byte(n))
			i = j - 1
		default:
			if c >= '0' && c <= '7' {
				j := i
				for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
					j++
				}
				n, _ := strconv.ParseUint(s[i:j], 8, 16)
				b.WriteByte(byte(n))
				i = j - 1
				continue
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
