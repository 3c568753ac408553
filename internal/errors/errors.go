// Package errors defines typed errors with categories for user-friendly reporting.
// Infrastructure failures (opening a database, running a shortcode query, loading
// configuration) carry a machine-readable Kind so the CLI and the preview server
// can present them differently from shortcode validation problems, which are
// never errors but help panels.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// ConnectFailed indicates the database could not be opened or pinged.
	ConnectFailed Kind = "connect_failed"
	// QueryFailed indicates the executor rejected a shortcode query.
	QueryFailed Kind = "query_failed"
	// UnsupportedDatabase indicates a DSN for a database without an executor.
	UnsupportedDatabase Kind = "unsupported_database"
	// ConfigInvalid indicates unreadable or inconsistent configuration.
	ConfigInvalid Kind = "config_invalid"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first *E in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
