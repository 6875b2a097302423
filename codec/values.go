package codec

import (
	"fmt"
	"sort"

	"github.com/dialogkit/slotmat/vocab"
)

// SlotValue is one slot assignment in a turn's state. A nil Score stands
// for the default score of 1.
type SlotValue struct {
	Slot  string   `json:"slot"`
	Value string   `json:"value"`
	Score *float64 `json:"score,omitempty"`
}

// StateValues converts a plain slot/value map into records with default
// scores, in sorted slot order.
func StateValues(state map[string]string) []SlotValue {
	slots := make([]string, 0, len(state))
	for slot := range state {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	out := make([]SlotValue, len(slots))
	for i, slot := range slots {
		out[i] = SlotValue{Slot: slot, Value: state[slot]}
	}
	return out
}

// ValueMatrixBuilder builds the slot-value score matrix of one turn. Each
// row is a slot, each column a candidate list position, with column 0
// reserved for "no value". Values missing from their slot's candidate
// list land in column 0 without an error, unlike the token matrix
// builder's hard failure.
type ValueMatrixBuilder struct {
	slots        *vocab.Vocab
	maxNumValues int
}

// NewValueMatrixBuilder returns a builder with maxNumValues+2 columns per
// row.
func NewValueMatrixBuilder(slots *vocab.Vocab, maxNumValues int) *ValueMatrixBuilder {
	return &ValueMatrixBuilder{slots: slots, maxNumValues: maxNumValues}
}

// Columns returns the per-row column count.
func (b *ValueMatrixBuilder) Columns() int {
	return b.maxNumValues + 2
}

// Build encodes a turn's state records into a [NumSlots][Columns] matrix.
// Later records for the same slot and value position overwrite earlier
// cells.
func (b *ValueMatrixBuilder) Build(state []SlotValue, cands Candidates) ([][]float64, error) {
	mat := floatMatrix(b.slots.Len(), b.Columns())
	for _, sv := range state {
		row, ok := b.slots.ID(sv.Slot)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, sv.Slot)
		}
		values, ok := cands[sv.Slot]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSlotCandidates, sv.Slot)
		}
		col := indexOf(values, sv.Value)
		if col < 0 {
			col = 0
		}
		if col >= b.Columns() {
			return nil, fmt.Errorf("codec: candidate position %d for value %q exceeds %d columns", col, sv.Value, b.Columns())
		}
		score := 1.0
		if sv.Score != nil {
			score = *sv.Score
		}
		mat[row][col] = score
	}
	return mat, nil
}

// BuildState is Build over a plain slot/value map.
func (b *ValueMatrixBuilder) BuildState(state map[string]string, cands Candidates) ([][]float64, error) {
	return b.Build(StateValues(state), cands)
}

// BuildBatch applies Build to each turn's state. The candidate batch must
// hold exactly one set, shared by every turn in the batch.
func (b *ValueMatrixBuilder) BuildBatch(states [][]SlotValue, candBatch []Candidates) ([][][]float64, error) {
	cands, err := singleCandidates(candBatch)
	if err != nil {
		return nil, err
	}
	out := make([][][]float64, len(states))
	for i := range states {
		mat, err := b.Build(states[i], cands)
		if err != nil {
			return nil, err
		}
		out[i] = mat
	}
	return out, nil
}
