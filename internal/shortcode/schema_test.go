// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shortcode

import (
	"reflect"
	"strings"
	"testing"
)

func TestSchema_Order(t *testing.T) {
	want := []string{
		"table", "cols", "where", "order-by", "limit", "wrapper",
		"element-wrapper", "class", "format", "link", "table-head", "no-data-msg",
	}
	if got := DefaultSchema().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	for _, d := range DefaultSchema().Definitions() {
		if strings.TrimSpace(d.Description) == "" {
			t.Errorf("attribute %s has no description", d.Name)
		}
	}
}

func TestNewSchema_DuplicateReplacesInPlace(t *testing.T) {
	s := NewSchema(
		Definition{Name: "a", Default: "1"},
		Definition{Name: "b", Default: "2"},
		Definition{Name: "a", Default: "3"},
	)
	if got := s.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
	if d, _ := s.Lookup("a"); d.Default != "3" {
		t.Errorf("a default = %q, want 3", d.Default)
	}
}
