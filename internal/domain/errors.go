package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline errors so callers can translate them into
// user-facing messages without re-querying the store.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"
	KindAlreadyConverted   ErrorKind = "already_converted"
	KindInvariantViolation ErrorKind = "invariant_violation"
	KindConversionFailed   ErrorKind = "conversion_failed"
)

// Error carries the kind plus the offending entity/id.
type Error struct {
	Kind   ErrorKind
	Entity string
	ID     int64
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s %d", e.Kind, e.Entity, e.ID)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(entity string, id int64) error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

func AlreadyConverted(leadID int64) error {
	return &Error{Kind: KindAlreadyConverted, Entity: "lead", ID: leadID}
}

// InvariantViolation marks stage-history corruption. It is always fatal to the
// operation and never silently repaired.
func InvariantViolation(opportunityID int64, err error) error {
	return &Error{Kind: KindInvariantViolation, Entity: "opportunity", ID: opportunityID, Err: err}
}

// ConversionFailed wraps any error raised inside the conversion transaction.
func ConversionFailed(leadID int64, err error) error {
	return &Error{Kind: KindConversionFailed, Entity: "lead", ID: leadID, Err: err}
}

// IsKind reports whether err (or anything it wraps) is a pipeline error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Kind == kind {
			return true
		}
		err = de.Err
	}
	return false
}
