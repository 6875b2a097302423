package codec

import "errors"

var (
	// ErrUnknownSlot is returned when a slot name is missing from the
	// slot vocabulary.
	ErrUnknownSlot = errors.New("codec: unknown slot name")

	// ErrUnknownAction is returned when an action name is missing from
	// the action vocabulary.
	ErrUnknownAction = errors.New("codec: unknown action name")

	// ErrSlotCandidates is returned when a slot has no entry in the
	// candidate set.
	ErrSlotCandidates = errors.New("codec: slot not in candidates")

	// ErrValueCandidates is returned when a span's value is missing from
	// its slot's candidate list.
	ErrValueCandidates = errors.New("codec: value not in slot candidates")

	// ErrCandidateBatch is returned by batch entry points when the
	// candidate batch does not hold exactly one set.
	ErrCandidateBatch = errors.New("codec: not implemented for candidates with length > 1")
)
