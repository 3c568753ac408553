// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shortcode

import "strings"

// MatchFunc reports whether value contains token.
type MatchFunc func(value, token string) bool

// Policy is a denylist of tokens that make an attribute value unsafe for SQL.
//
// It is a heuristic, not a parser: SQL comments, keywords not followed by a
// space, or keywords separated by other whitespace pass the check.
type Policy struct {
	Forbidden []string
	Match     MatchFunc
}

var defaultForbidden = []string{
	";",
	"SELECT ",
	"UPDATE ",
	"INSERT ",
	"DELETE ",
	"CREATE ",
	"ALTER ",
	"DROP ",
	"TRUNCATE ",
	"SHOW ",
	"USE ",
	"GRANT ",
}

// DefaultPolicy returns the denylist used for shortcode attributes.
func DefaultPolicy() Policy {
	forbidden := make([]string, len(defaultForbidden))
	copy(forbidden, defaultForbidden)
	return Policy{Forbidden: forbidden, Match: ContainsFold}
}

// ContainsFold is a case-insensitive substring match.
func ContainsFold(value, token string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(token))
}

// Violation returns the first forbidden token found in value.
func (p Policy) Violation(value string) (string, bool) {
	match := p.Match
	if match == nil {
		match = ContainsFold
	}
	for _, token := range p.Forbidden {
		if match(value, token) {
			return token, true
		}
	}
	return "", false
}

// IsSafe reports whether value contains none of the forbidden tokens.
func (p Policy) IsSafe(value string) bool {
	_, found := p.Violation(value)
	return !found
}

// With returns a copy of the policy with extra forbidden tokens.
func (p Policy) With(tokens ...string) Policy {
	forbidden := make([]string, 0, len(p.Forbidden)+len(tokens))
	forbidden = append(forbidden, p.Forbidden...)
	forbidden = append(forbidden, tokens...)
	return Policy{Forbidden: forbidden, Match: p.Match}
}
