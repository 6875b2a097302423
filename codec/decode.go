package codec

import (
	"fmt"

	"github.com/dialogkit/slotmat/vocab"
)

// StateDecoder turns a value-index vector back into a slot/value map.
//
// The vector holds one candidate list position per slot, in slot
// vocabulary order. Positions outside a slot's candidate list clamp to 0;
// decoded values listed in excludeValues drop their slot from the result.
type StateDecoder struct {
	slots   *vocab.Vocab
	exclude map[string]bool
}

// NewStateDecoder returns a decoder over the slot vocabulary. Values in
// excludeValues never appear in decoded states.
func NewStateDecoder(slots *vocab.Vocab, excludeValues []string) *StateDecoder {
	ex := make(map[string]bool, len(excludeValues))
	for _, v := range excludeValues {
		ex[v] = true
	}
	return &StateDecoder{slots: slots, exclude: ex}
}

// Decode resolves every slot in the vocabulary. The vector length must
// equal the vocabulary size and each slot must have a non-empty candidate
// list.
func (d *StateDecoder) Decode(values []int, cands Candidates) (map[string]string, error) {
	if len(values) != d.slots.Len() {
		return nil, fmt.Errorf("codec: value vector length %d, vocabulary has %d slots", len(values), d.slots.Len())
	}
	state := make(map[string]string, len(values))
	for i, idx := range values {
		slot, _ := d.slots.Name(i)
		list, ok := cands[slot]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSlotCandidates, slot)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("codec: no candidate values for slot %q", slot)
		}
		if idx < 0 || idx >= len(list) {
			idx = 0
		}
		value := list[idx]
		if d.exclude[value] {
			continue
		}
		state[slot] = value
	}
	return state, nil
}

// DecodeBatch mirrors the upstream pipeline surface: the candidate batch
// must hold exactly one set, and the result batch holds exactly one state
// because the decoder only ever processes one instance per call.
func (d *StateDecoder) DecodeBatch(values []int, candBatch []Candidates) ([]map[string]string, error) {
	cands, err := singleCandidates(candBatch)
	if err != nil {
		return nil, err
	}
	state, err := d.Decode(values, cands)
	if err != nil {
		return nil, err
	}
	return []map[string]string{state}, nil
}
