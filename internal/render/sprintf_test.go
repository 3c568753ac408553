// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package render

import (
	"errors"
	"testing"
)

func TestSprintf(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{"plain string", "%s", []any{"x"}, "x"},
		{"literal text", "Date: %s!", []any{"today"}, "Date: today!"},
		{"percent escape", "%d%%", []any{"42abc"}, "42%"},
		{"zero padded float", "%05.2f", []any{3.14159}, "03.14"},
		{"custom pad", "%'*8s", []any{"abc"}, "*****abc"},
		{"left justify", "%-6s|", []any{"ab"}, "ab    |"},
		{"plus sign", "%+d", []any{int64(5)}, "+5"},
		{"negative zero pad", "%05d", []any{int64(-42)}, "-0042"},
		{"hex lower", "%x", []any{int64(255)}, "ff"},
		{"hex upper", "%X", []any{int64(255)}, "FF"},
		{"octal", "%o", []any{int64(8)}, "10"},
		{"binary", "%b", []any{int64(5)}, "101"},
		{"unsigned negative", "%u", []any{int64(-1)}, "18446744073709551615"},
		{"char", "%c", []any{int64(65)}, "A"},
		{"exponent", "%e", []any{12.3456}, "1.234560e+1"},
		{"exponent precision", "%.1e", []any{0.000123}, "1.2e-4"},
		{"exponent upper", "%E", []any{12.3456}, "1.234560E+1"},
		{"general small", "%g", []any{0.00001234}, "1.234e-5"},
		{"general large", "%g", []any{1e25}, "1.0e+25"},
		{"general plain", "%g", []any{100000.0}, "100000"},
		{"string precision", "%.3s", []any{"abcdef"}, "abc"},
		{"positional reuse", "%1$s-%1$s", []any{"a"}, "a-a"},
		{"positional swap", "%2$s %1$s", []any{"a", "b"}, "b a"},
		{"numeric string", "%d", []any{" 12 apples"}, "12"},
		{"non numeric string", "%d", []any{"apples"}, "0"},
		{"float string", "%.1f", []any{"2.26"}, "2.3"},
		{"nil as int", "%d", []any{nil}, "0"},
		{"nil as string", "[%s]", []any{nil}, "[]"},
		{"true as string", "%s", []any{true}, "1"},
		{"float as string", "%s", []any{0.1 + 0.2}, "0.3"},
		{"whole float as string", "%s", []any{float64(100)}, "100"},
		{"huge float as string", "%s", []any{1e20}, "1.0E+20"},
		{"int as float", "%.2f", []any{int64(7)}, "7.00"},
		{"long modifier", "%ld", []any{int64(7)}, "7"},
		{"extra args ignored", "%s", []any{"a", "b"}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sprintf(tt.format, tt.args...)
			if err != nil {
				t.Fatalf("Sprintf(%q) error = %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Sprintf(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestSprintf_ArgCount(t *testing.T) {
	_, err := Sprintf("%s %s", "a")

	var ace *ArgCountError
	if !errors.As(err, &ace) {
		t.Fatalf("error = %v, want *ArgCountError", err)
	}
	if ace.Required != 2 || ace.Given != 1 {
		t.Errorf("ArgCountError = %+v, want Required 2, Given 1", ace)
	}

	if _, err := Sprintf("%3$s", "a", "b"); !errors.As(err, &ace) {
		t.Errorf("positional beyond args: error = %v, want *ArgCountError", err)
	}
}

func TestSprintf_Invalid(t *testing.T) {
	for _, format := range []string{"100%", "%y", "%0$s", "%'"} {
		t.Run(format, func(t *testing.T) {
			_, err := Sprintf(format, "a")
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("Sprintf(%q) error = %v, want *FormatError", format, err)
			}
		})
	}
}

func TestFalsy(t *testing.T) {
	for _, v := range []any{nil, "", "0", int64(0), 0.0, false} {
		if !falsy(v) {
			t.Errorf("falsy(%#v) = false, want true", v)
		}
	}
	for _, v := range []any{"00", " ", "a", int64(1), 0.5, true} {
		if falsy(v) {
			t.Errorf("falsy(%#v) = true, want false", v)
		}
	}
}
