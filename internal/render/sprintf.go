// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package render

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ArgCountError reports a format that references more values than were given.
type ArgCountError struct {
	Required int
	Given    int
}

func (e *ArgCountError) Error() string {
	return fmt.Sprintf("format needs %d values, %d given", e.Required, e.Given)
}

// FormatError reports a malformed format string.
type FormatError struct {
	Format string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format %q: %s", e.Format, e.Reason)
}

// directive is one parsed %-conversion.
type directive struct {
	argnum     int
	positional bool
	left       bool
	plus       bool
	pad        byte
	width      int
	precision  int
	verb       byte
}

// Sprintf formats args the way content authors write format attributes:
// %[argnum$][flags][width][.precision]specifier with the flags - + 0, space
// and 'c (custom padding character). Values are converted loosely, so a
// numeric string formats under %d and an empty value formats as zero.
//
// Supported specifiers are b c d e E f F g G o s u x X and %%.
// Referencing a value that was not given returns *ArgCountError.
func Sprintf(format string, args ...any) (string, error) {
	var out strings.Builder
	next := 0

	for i := 0; i < len(format); {
		if format[i] != '%' {
			j := strings.IndexByte(format[i:], '%')
			if j < 0 {
				out.WriteString(format[i:])
				break
			}
			out.WriteString(format[i : i+j])
			i += j
			continue
		}

		i++
		if i >= len(format) {
			return "", &FormatError{Format: format, Reason: "missing specifier at end of string"}
		}
		if format[i] == '%' {
			out.WriteByte('%')
			i++
			continue
		}

		d := directive{pad: ' ', precision: -1}

		if j := scanDigits(format, i); j > i && j < len(format) && format[j] == '$' {
			n, err := strconv.Atoi(format[i:j])
			if err != nil || n <= 0 {
				return "", &FormatError{Format: format, Reason: "argument number must be greater than zero"}
			}
			d.argnum = n - 1
			d.positional = true
			i = j + 1
		}

	flags:
		for i < len(format) {
			switch format[i] {
			case '-':
				d.left = true
			case '+':
				d.plus = true
			case ' ':
				d.pad = ' '
			case '0':
				d.pad = '0'
			case '\'':
				if i+1 >= len(format) {
					return "", &FormatError{Format: format, Reason: "missing padding character"}
				}
				i++
				d.pad = format[i]
			default:
				break flags
			}
			i++
		}

		if j := scanDigits(format, i); j > i {
			d.width, _ = strconv.Atoi(format[i:j])
			i = j
		}
		if i < len(format) && format[i] == '.' {
			i++
			j := scanDigits(format, i)
			d.precision = 0
			if j > i {
				d.precision, _ = strconv.Atoi(format[i:j])
			}
			i = j
		}

		if i < len(format) && format[i] == 'l' {
			i++
		}
		if i >= len(format) {
			return "", &FormatError{Format: format, Reason: "missing specifier at end of string"}
		}
		d.verb = format[i]
		i++

		if !d.positional {
			d.argnum = next
			next++
		}
		if d.argnum >= len(args) {
			return "", &ArgCountError{Required: d.argnum + 1, Given: len(args)}
		}

		if err := d.write(&out, args[d.argnum]); err != nil {
			return "", &FormatError{Format: format, Reason: err.Error()}
		}
	}

	return out.String(), nil
}

func scanDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func (d directive) write(out *strings.Builder, arg any) error {
	switch d.verb {
	case 's':
		s := toString(arg)
		if d.precision >= 0 && utf8.RuneCountInString(s) > d.precision {
			s = string([]rune(s)[:d.precision])
		}
		out.WriteString(d.padded(s, false))
	case 'd':
		n := toInt(arg)
		s := strconv.FormatInt(n, 10)
		if d.plus && n >= 0 {
			s = "+" + s
		}
		out.WriteString(d.padded(s, true))
	case 'u':
		out.WriteString(d.padded(strconv.FormatUint(uint64(toInt(arg)), 10), true))
	case 'f', 'F':
		out.WriteString(d.padded(d.signed(formatFloat(toFloat(arg), 'f', d.prec(6))), true))
	case 'e', 'E':
		s := formatFloat(toFloat(arg), 'e', d.prec(6))
		s = shortExponent(s, 'e', false)
		if d.verb == 'E' {
			s = strings.ToUpper(s)
		}
		out.WriteString(d.padded(d.signed(s), true))
	case 'g', 'G':
		p := d.prec(6)
		if p == 0 {
			p = 1
		}
		s := formatFloat(toFloat(arg), 'g', p)
		s = shortExponent(s, 'e', true)
		if d.verb == 'G' {
			s = strings.ToUpper(s)
		}
		out.WriteString(d.padded(d.signed(s), true))
	case 'b':
		out.WriteString(d.padded(strconv.FormatUint(uint64(toInt(arg)), 2), true))
	case 'o':
		out.WriteString(d.padded(strconv.FormatUint(uint64(toInt(arg)), 8), true))
	case 'x':
		out.WriteString(d.padded(strconv.FormatUint(uint64(toInt(arg)), 16), true))
	case 'X':
		out.WriteString(d.padded(strings.ToUpper(strconv.FormatUint(uint64(toInt(arg)), 16)), true))
	case 'c':
		out.WriteByte(byte(toInt(arg)))
	default:
		return fmt.Errorf("unknown specifier %q", d.verb)
	}
	return nil
}

func (d directive) prec(def int) int {
	if d.precision < 0 {
		return def
	}
	return d.precision
}

func (d directive) signed(s string) string {
	if d.plus && !strings.HasPrefix(s, "-") {
		return "+" + s
	}
	return s
}

// padded applies width. Zero padding of numbers goes after the sign.
func (d directive) padded(s string, numeric bool) string {
	n := d.width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	fill := strings.Repeat(string(d.pad), n)
	if d.left {
		return s + fill
	}
	if numeric && d.pad == '0' && (strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+")) {
		return s[:1] + fill + s[1:]
	}
	return fill + s
}

func formatFloat(f float64, verb byte, prec int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, verb, prec, 64)
}

// shortExponent rewrites Go's e+07 exponent as e+7. With mantissaDot set an
// integral mantissa gains ".0", giving 1.0e+25.
func shortExponent(s string, e byte, mantissaDot bool) string {
	i := strings.IndexByte(s, e)
	if i < 0 || i+2 > len(s) {
		return s
	}
	mantissa, sign, digits := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	if mantissaDot && !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	return mantissa + string(e) + string(sign) + digits
}

var numericPrefix = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// toString converts a row value to text: nil and false become "", true
// becomes "1" and floats use 14 significant digits.
func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "1"
		}
		return ""
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return floatString(val)
	}
	return fmt.Sprint(v)
}

func floatString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	return shortExponent(strconv.FormatFloat(f, 'G', 14, 64), 'E', true)
}

// toInt converts loosely: numeric strings use their leading number and
// anything unparseable is zero.
func toInt(v any) int64 {
	switch val := v.(type) {
	case nil:
		return 0
	case bool:
		if val {
			return 1
		}
		return 0
	case int64:
		return val
	case int:
		return int64(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return int64(val)
	case string:
		num := strings.TrimSpace(numericPrefix.FindString(val))
		if num == "" {
			return 0
		}
		if !strings.ContainsAny(num, ".eE") {
			if n, err := strconv.ParseInt(num, 10, 64); err == nil {
				return n
			}
		}
		f, _ := strconv.ParseFloat(num, 64)
		return toInt(f)
	}
	return toInt(toString(v))
}

func toFloat(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case bool:
		if val {
			return 1
		}
		return 0
	case int64:
		return float64(val)
	case int:
		return float64(val)
	case float64:
		return val
	case string:
		num := strings.TrimSpace(numericPrefix.FindString(val))
		if num == "" {
			return 0
		}
		f, _ := strconv.ParseFloat(num, 64)
		return f
	}
	return toFloat(toString(v))
}

// falsy reports whether a row value counts as empty in table cells:
// nil, "", "0", zero numbers and false.
func falsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == "" || val == "0"
	case bool:
		return !val
	case int64:
		return val == 0
	case int:
		return val == 0
	case float64:
		return val == 0
	}
	return false
}

// set reports whether an attribute value enables its feature.
func set(s string) bool {
	return s != "" && s != "0"
}
