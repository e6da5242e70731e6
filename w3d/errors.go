package w3d

import (
	"fmt"

	"github.com/pkg/errors"
)

type Constraint int

const (
	MustEqual Constraint = iota
	MustBeAtMost
	MustBeOneOr
	MustBeBelow
	MustBeAtLeast
)

// StructuralInconsistencyError reports a decoded length or index that
// disagrees with a count declared earlier in the file.
type StructuralInconsistencyError struct {
	Entity     string
	Field      string
	Constraint Constraint
	Expected   int
	Actual     int
}

func (e *StructuralInconsistencyError) Error() string {
	var rule string
	switch e.Constraint {
	case MustBeAtMost:
		rule = fmt.Sprintf("at most %d", e.Expected)
	case MustBeOneOr:
		rule = fmt.Sprintf("1 or %d", e.Expected)
	case MustBeBelow:
		rule = fmt.Sprintf("below %d", e.Expected)
	case MustBeAtLeast:
		rule = fmt.Sprintf("at least %d", e.Expected)
	default:
		rule = fmt.Sprintf("%d", e.Expected)
	}
	return fmt.Sprintf("structural inconsistency: %s %s: expected %s, got %d",
		e.Entity, e.Field, rule, e.Actual)
}

func inconsistency(entity, field string, c Constraint, expected, actual int) error {
	return errors.WithStack(&StructuralInconsistencyError{
		Entity:     entity,
		Field:      field,
		Constraint: c,
		Expected:   expected,
		Actual:     actual,
	})
}

// checkLen returns nil when actual == expected.
func checkLen(entity, field string, expected, actual int) error {
	if expected != actual {
		return inconsistency(entity, field, MustEqual, expected, actual)
	}
	return nil
}

func checkAtMost(entity, field string, limit, actual int) error {
	if actual > limit {
		return inconsistency(entity, field, MustBeAtMost, limit, actual)
	}
	return nil
}

// checkOneOr accepts exactly 1 (shared by every element) or n.
func checkOneOr(entity, field string, n, actual int) error {
	if actual != 1 && actual != n {
		return inconsistency(entity, field, MustBeOneOr, n, actual)
	}
	return nil
}

type UnrecognizedEnumValueError struct {
	Enum  string
	Value uint32
}

func (e *UnrecognizedEnumValueError) Error() string {
	return fmt.Sprintf("unrecognized %s value 0x%x", e.Enum, e.Value)
}

func unrecognized(enum string, value uint32) error {
	return errors.WithStack(&UnrecognizedEnumValueError{Enum: enum, Value: value})
}

// ParseError is returned for every fatal failure of Read.
// Offset is the absolute source position where parsing stopped.
type ParseError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[w3d] %s at 0x%x: %v", e.Path, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Cause() error  { return e.Err }
