package nperrors

import (
	"errors"
	"fmt"
)

// Kind identifies the high level class of an error surfaced by the keyfile bridge.
type Kind string

const (
	// KindMalformedInput indicates structurally broken keyfile or YAML text.
	KindMalformedInput Kind = "malformed input"
	// KindMissingField indicates a profile lacks connection.type, connection.uuid or wifi.ssid.
	KindMissingField Kind = "missing required field"
	// KindNotFound indicates a delete target is absent from the config set.
	KindNotFound Kind = "not found"
	// KindAmbiguousID indicates the same id is defined more than once in the config set.
	KindAmbiguousID Kind = "ambiguous id"
	// KindIO indicates a write, rename or delete could not complete.
	KindIO Kind = "io"
	// KindRender indicates YAML emission failed.
	KindRender Kind = "render"
	// KindInternal indicates an unknown or internal error.
	KindInternal Kind = "internal"
)

// Error wraps an underlying error and tags it with a Kind so callers can branch on it.
type Error struct {
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap lets errors.Is/As reach the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates an error of the given Kind.
func New(kind Kind, err error) error {
	if err == nil {
		err = errors.New(string(kind))
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

var (
	// ErrMissingUUID is returned for profiles without connection.uuid.
	ErrMissingUUID = New(KindMissingField, errors.New("cannot find connection.uuid"))
	// ErrMissingType is returned for profiles without connection.type.
	ErrMissingType = New(KindMissingField, errors.New("cannot find connection.type"))
	// ErrMissingSSID is returned for wifi profiles without wifi.ssid.
	ErrMissingSSID = New(KindMissingField, errors.New("cannot find SSID for wifi connection"))
	// ErrNotFound is returned by the editor when no document defines the requested id.
	ErrNotFound = New(KindNotFound, errors.New("no definition with that id"))
)
