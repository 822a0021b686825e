package pricing

import (
	"errors"
	"fmt"
)

// Error kinds mirror the domain error style in internal/domain: small structs
// with Unwrap and errors.As helpers. Every kind is a local, recoverable
// condition; within a bulk run they are captured per item, never propagated to
// sibling items.

type ItemNotFoundError struct {
	Kind ItemKind
	ID   string
	Err  error
}

func (e ItemNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e ItemNotFoundError) Unwrap() error { return e.Err }

// RateNotFoundError is reserved for rate resolution with no usable fallback;
// a missing seasonal rate alone never triggers it because the item base price
// is always a safe fallback.
type RateNotFoundError struct {
	Kind ItemKind
	ID   string
	Err  error
}

func (e RateNotFoundError) Error() string {
	return fmt.Sprintf("no rate available for %s %q", e.Kind, e.ID)
}

func (e RateNotFoundError) Unwrap() error { return e.Err }

type InvalidPartyCompositionError struct {
	Msg string
}

func (e InvalidPartyCompositionError) Error() string {
	if e.Msg == "" {
		return "invalid party composition"
	}
	return "invalid party composition: " + e.Msg
}

type CapacityExceededError struct {
	Headcount   uint
	MaxCapacity uint
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("headcount %d exceeds largest vehicle capacity %d", e.Headcount, e.MaxCapacity)
}

type InvalidMarkupError struct {
	Msg string
}

func (e InvalidMarkupError) Error() string {
	if e.Msg == "" {
		return "invalid markup configuration"
	}
	return "invalid markup configuration: " + e.Msg
}

func IsItemNotFound(err error) bool {
	var target ItemNotFoundError
	return errors.As(err, &target)
}

func IsRateNotFound(err error) bool {
	var target RateNotFoundError
	return errors.As(err, &target)
}

func IsInvalidPartyComposition(err error) bool {
	var target InvalidPartyCompositionError
	return errors.As(err, &target)
}

func IsCapacityExceeded(err error) bool {
	var target CapacityExceededError
	return errors.As(err, &target)
}

func IsInvalidMarkup(err error) bool {
	var target InvalidMarkupError
	return errors.As(err, &target)
}
