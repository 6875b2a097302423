package codec

import (
	"fmt"

	"github.com/dialogkit/slotmat/vocab"
)

// Action is one dialogue act: an action name plus the slots it mentions.
// A missing slots field means the act mentions none.
type Action struct {
	Act   string   `json:"act"`
	Slots []string `json:"slots,omitempty"`
}

// ActionMaskBuilder builds the slot-action mask of one turn.
type ActionMaskBuilder struct {
	slots   *vocab.Vocab
	actions *ActionVocab
}

// NewActionMaskBuilder returns a builder resolving rows against the slot
// vocabulary and columns against the action vocabulary.
func NewActionMaskBuilder(slots *vocab.Vocab, actions *ActionVocab) *ActionMaskBuilder {
	return &ActionMaskBuilder{slots: slots, actions: actions}
}

// Build encodes a turn's actions into a [NumSlots][NumActions] mask. Each
// act sets the cell at every mentioned slot's row and its own column; an
// act mentioning no slots sets no cells.
func (b *ActionMaskBuilder) Build(acts []Action) ([][]float64, error) {
	mat := floatMatrix(b.slots.Len(), b.actions.Len())
	for _, a := range acts {
		col, ok := b.actions.ID(a.Act)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, a.Act)
		}
		for _, slot := range a.Slots {
			row, ok := b.slots.ID(slot)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
			}
			mat[row][col] = 1
		}
	}
	return mat, nil
}

// BuildBatch applies Build to each turn's action list.
func (b *ActionMaskBuilder) BuildBatch(turns [][]Action) ([][][]float64, error) {
	out := make([][][]float64, len(turns))
	for i := range turns {
		mat, err := b.Build(turns[i])
		if err != nil {
			return nil, err
		}
		out[i] = mat
	}
	return out, nil
}
