package codec

import (
	"fmt"

	"github.com/dialogkit/slotmat/vocab"
)

// ActionVocab is a vocabulary over action names, fitted from dialogue act
// records by extracting each record's act field. Plain names encode and
// decode exactly as on the embedded vocabulary.
type ActionVocab struct {
	*vocab.Vocab
}

// NewActionVocab returns an action vocabulary seeded with the given names.
func NewActionVocab(names ...string) *ActionVocab {
	return &ActionVocab{Vocab: vocab.New(names...)}
}

// FitActs observes batches of per-turn action lists, flattening them and
// adding each record's action name in order.
func (av *ActionVocab) FitActs(batches ...[][]Action) {
	for _, batch := range batches {
		for _, turn := range batch {
			for _, a := range turn {
				av.Add(a.Act)
			}
		}
	}
}

// EncodeActs maps action records to indices via their act fields.
func (av *ActionVocab) EncodeActs(acts []Action) ([]int, error) {
	ids := make([]int, len(acts))
	for i, a := range acts {
		id, ok := av.ID(a.Act)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, a.Act)
		}
		ids[i] = id
	}
	return ids, nil
}
