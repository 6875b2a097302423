package codec

import (
	"fmt"
	"strings"

	"github.com/dialogkit/slotmat/bio"
	"github.com/dialogkit/slotmat/vocab"
)

// TokenMatrixBuilder builds the slot-per-token matrix of one utterance.
//
// Without candidates, each extracted span marks its first column with 1 on
// the slot's row (a presence marker). With candidates, every column of the
// span is filled with the position of the span's value in the slot's
// candidate list shifted by one, so 0 keeps meaning "no value".
type TokenMatrixBuilder struct {
	slots *vocab.Vocab
}

// NewTokenMatrixBuilder returns a builder resolving slots against the
// given vocabulary.
func NewTokenMatrixBuilder(slots *vocab.Vocab) *TokenMatrixBuilder {
	return &TokenMatrixBuilder{slots: slots}
}

// Build encodes one utterance into a [NumSlots][len(tokens)] matrix.
// A nil cands selects presence-marker mode. With candidates, a span whose
// joined value is missing from its slot's list is an error, unlike the
// value matrix builder's silent fallback.
func (b *TokenMatrixBuilder) Build(tokens, tags []string, cands Candidates) ([][]int, error) {
	if len(tokens) != len(tags) {
		return nil, fmt.Errorf("codec: tokens/tags length mismatch: %d vs %d", len(tokens), len(tags))
	}
	spans, err := bio.Spans(tags)
	if err != nil {
		return nil, err
	}
	mat := intMatrix(b.slots.Len(), len(tags))
	for _, sp := range spans {
		row, ok := b.slots.ID(sp.Slot)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, sp.Slot)
		}
		if cands == nil {
			mat[row][sp.Start] = 1
			continue
		}
		values, ok := cands[sp.Slot]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSlotCandidates, sp.Slot)
		}
		value := strings.Join(tokens[sp.Start:sp.Start+sp.Len], " ")
		idx := indexOf(values, value)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q for slot %q", ErrValueCandidates, value, sp.Slot)
		}
		for col := sp.Start; col < sp.Start+sp.Len; col++ {
			mat[row][col] = idx + 1
		}
	}
	return mat, nil
}

// BuildBatch applies Build to each utterance. The candidate batch must
// hold exactly one set, shared by every utterance in the batch.
func (b *TokenMatrixBuilder) BuildBatch(tokens, tags [][]string, candBatch []Candidates) ([][][]int, error) {
	cands, err := singleCandidates(candBatch)
	if err != nil {
		return nil, err
	}
	if len(tokens) != len(tags) {
		return nil, fmt.Errorf("codec: utterance/tag batch length mismatch: %d vs %d", len(tokens), len(tags))
	}
	out := make([][][]int, len(tokens))
	for i := range tokens {
		mat, err := b.Build(tokens[i], tags[i], cands)
		if err != nil {
			return nil, err
		}
		out[i] = mat
	}
	return out, nil
}
