// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shortcode

import (
	"fmt"
	"strings"
)

// ValidationError reports why a raw attribute set was rejected.
// Messages may be empty when no attributes were given at all.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "shortcode: no attributes given"
	}
	return "shortcode: " + strings.Join(e.Messages, " ")
}

// Resolver turns raw shortcode attributes into a validated attribute set.
type Resolver struct {
	Schema *Schema
	Policy Policy
	// Prefix replaces PrefixPlaceholder in attribute values.
	Prefix string
}

// NewResolver returns a resolver over the default schema and denylist.
func NewResolver(prefix string) *Resolver {
	return &Resolver{
		Schema: DefaultSchema(),
		Policy: DefaultPolicy(),
		Prefix: prefix,
	}
}

var entityDecoder = strings.NewReplacer("&gt;", ">", "&lt;", "<")

// Resolve fills defaults, rejects unknown or unsafe attributes and substitutes
// the table prefix. On failure it returns a *ValidationError.
//
// Validation stops at the first unsafe attribute; attributes after it are
// neither checked nor defaulted.
func (r *Resolver) Resolve(raw RawAttrs) (Attrs, error) {
	if len(raw) == 0 {
		return nil, &ValidationError{}
	}

	var unknown []string
	for _, name := range raw.Names() {
		if !r.Schema.Has(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, &ValidationError{Messages: []string{
			fmt.Sprintf("Some attributes are unknown (%s).", strings.Join(unknown, ", ")),
		}}
	}

	attrs := make(Attrs, r.Schema.Len())
	for _, def := range r.Schema.defs {
		value := def.Default
		if v, ok := raw.Lookup(def.Name); ok && v != "" {
			value = entityDecoder.Replace(v)
		}
		if !r.Policy.IsSafe(value) {
			return nil, &ValidationError{Messages: []string{
				fmt.Sprintf("The attribute %s is not safe for SQL.", def.Name),
			}}
		}
		attrs[def.Name] = r.substitutePrefix(value)
	}

	if attrs[AttrTable] == "" {
		return nil, &ValidationError{Messages: []string{`Attribute "table" is not defined.`}}
	}
	return attrs, nil
}

func (r *Resolver) substitutePrefix(value string) string {
	return strings.ReplaceAll(value, PrefixPlaceholder, r.Prefix)
}
