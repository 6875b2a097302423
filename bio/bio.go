// Package bio handles BIO tag sequences: mapping tags to slot names,
// extracting contiguous slot spans, and delexicalizing tagged utterances.
package bio

import (
	"errors"
	"fmt"
)

// Outside is the tag for tokens that carry no slot.
const Outside = "O"

// ErrTagFormat is returned for tags that are neither Outside nor carry a
// "B-" or "I-" prefix.
var ErrTagFormat = errors.New("bio: wrong tag format")

// Span is a contiguous run of tokens tagged with the same slot.
type Span struct {
	Slot  string
	Start int
	Len   int
}

// Slot extracts the slot name from a BIO tag. ok is false for the Outside
// tag. Any other tag without a B- or I- prefix is a format error.
func Slot(tag string) (slot string, ok bool, err error) {
	if tag == Outside {
		return "", false, nil
	}
	if len(tag) >= 2 && (tag[:2] == "B-" || tag[:2] == "I-") {
		return tag[2:], true, nil
	}
	return "", false, fmt.Errorf("%w: %q", ErrTagFormat, tag)
}

// Spans extracts slot spans from a tag sequence. Any non-Outside tag opens
// a span, which extends while the following tags are "I-" plus the same
// slot name. Scanning resumes after the span, so spans never overlap.
func Spans(tags []string) ([]Span, error) {
	var spans []Span
	i := 0
	for i < len(tags) {
		slot, ok, err := Slot(tags[i])
		if err != nil {
			return nil, err
		}
		if !ok {
			i++
			continue
		}
		n := 1
		for i+n < len(tags) && tags[i+n] == "I-"+slot {
			n++
		}
		spans = append(spans, Span{Slot: slot, Start: i, Len: n})
		i += n
	}
	return spans, nil
}

// Delexicalize replaces each slot-tagged token with a "#"+slot placeholder
// and passes Outside tokens through. Output length equals input length.
func Delexicalize(tokens, tags []string) ([]string, error) {
	if len(tokens) != len(tags) {
		return nil, fmt.Errorf("bio: tokens/tags length mismatch: %d vs %d", len(tokens), len(tags))
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		slot, ok, err := Slot(tags[i])
		if err != nil {
			return nil, err
		}
		if ok {
			out[i] = "#" + slot
		} else {
			out[i] = tok
		}
	}
	return out, nil
}

// DelexicalizeBatch applies Delexicalize over parallel utterance batches.
func DelexicalizeBatch(tokens, tags [][]string) ([][]string, error) {
	if len(tokens) != len(tags) {
		return nil, fmt.Errorf("bio: utterance/tag batch length mismatch: %d vs %d", len(tokens), len(tags))
	}
	out := make([][]string, len(tokens))
	for i := range tokens {
		d, err := Delexicalize(tokens[i], tags[i])
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}
