package fingerprint

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMAC       = errors.New("invalid MAC address format")
	ErrVendorNotFound   = errors.New("vendor not found")
	ErrEmptyMAC         = errors.New("empty MAC address")
	ErrRepositoryClosed = errors.New("oui repository is closed")
)

// DatabaseError records which OUI database step failed.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("oui db %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ValidationError carries the device field whose value could not be parsed.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("device %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
