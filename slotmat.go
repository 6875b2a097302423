// Package slotmat converts between the surface form of a dialogue turn
// (BIO-tagged tokens plus per-turn candidate values) and the dense matrix
// form consumed by downstream state trackers.
//
//	c, _ := slotmat.New(map[string][]string{
//	    "city": {"none", "Paris Texas", "London"},
//	    "food": {"none", "steak"},
//	}, []string{"inform", "request"}, nil)
//	mat, _ := c.TokenMatrix(
//	    []string{"fly", "to", "Paris", "Texas"},
//	    []string{"O", "O", "B-city", "I-city"}, nil)
//	state, _ := c.DecodeState([]int{2, 0}, nil) // {"city": "London", "food": "none"}
//
// The matrices and the decoder follow the slot vocabulary's index order,
// which is the sorted order of the ontology's slot names.
package slotmat

import (
	"fmt"
	"sort"

	"github.com/dialogkit/slotmat/bio"
	"github.com/dialogkit/slotmat/codec"
	"github.com/dialogkit/slotmat/internal/dataset"
	"github.com/dialogkit/slotmat/vocab"
)

// Config adjusts codec construction.
type Config struct {
	// MaxNumValues caps candidate list positions in the value matrix.
	// Zero means the longest candidate list's length.
	MaxNumValues int
	// ExcludeValues are values the state decoder drops from results,
	// typically the "none" sentinel heading each candidate list.
	ExcludeValues []string
}

// Codec bundles the fitted vocabularies, the matrix builders, and the
// state decoder for one ontology. It is immutable after construction and
// safe for concurrent use.
type Codec struct {
	slots   *vocab.Vocab
	actions *codec.ActionVocab
	tokens  *codec.TokenMatrixBuilder
	values  *codec.ValueMatrixBuilder
	mask    *codec.ActionMaskBuilder
	decoder *codec.StateDecoder
	cands   codec.Candidates
}

// New builds a codec from an in-memory ontology: slot names mapped to
// their candidate values, plus the action inventory. Slot indices follow
// sorted name order; action indices follow the given order.
func New(slots map[string][]string, actions []string, config *Config) (*Codec, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("slotmat: ontology has no slots")
	}
	if len(actions) == 0 {
		return nil, fmt.Errorf("slotmat: ontology has no actions")
	}

	maxValues := 0
	excludeValues := []string(nil)
	if config != nil {
		maxValues = config.MaxNumValues
		excludeValues = config.ExcludeValues
	}

	names := make([]string, 0, len(slots))
	cands := make(codec.Candidates, len(slots))
	longest := 0
	for name, values := range slots {
		names = append(names, name)
		cands[name] = values
		if len(values) > longest {
			longest = len(values)
		}
	}
	if maxValues == 0 {
		maxValues = longest
	}
	sort.Strings(names)

	slotVocab := vocab.New(names...)
	actionVocab := codec.NewActionVocab(actions...)

	return &Codec{
		slots:   slotVocab,
		actions: actionVocab,
		tokens:  codec.NewTokenMatrixBuilder(slotVocab),
		values:  codec.NewValueMatrixBuilder(slotVocab, maxValues),
		mask:    codec.NewActionMaskBuilder(slotVocab, actionVocab),
		decoder: codec.NewStateDecoder(slotVocab, excludeValues),
		cands:   cands,
	}, nil
}

// Load builds a codec from the ontology in a dataset folder. When the
// ontology lists no actions, they are fitted from the turns file in
// first-seen order.
func Load(dataDir string, config *Config) (*Codec, error) {
	store := dataset.NewStorage(dataDir)
	ont, err := store.Ontology()
	if err != nil {
		return nil, fmt.Errorf("slotmat: %w", err)
	}
	actions := ont.Actions
	if len(actions) == 0 {
		if actions, err = store.ActionNames(); err != nil {
			return nil, fmt.Errorf("slotmat: %w", err)
		}
		if len(actions) == 0 {
			return nil, fmt.Errorf("slotmat: no actions in ontology or %s", dataset.TurnsFile)
		}
	}
	return New(ont.Slots, actions, config)
}

// Slots returns the slot names in vocabulary index order.
func (c *Codec) Slots() []string {
	return c.slots.Names()
}

// Actions returns the action names in vocabulary index order.
func (c *Codec) Actions() []string {
	return c.actions.Names()
}

// NumSlots returns the slot vocabulary size, the row count of every
// matrix.
func (c *Codec) NumSlots() int {
	return c.slots.Len()
}

// NumActions returns the action vocabulary size.
func (c *Codec) NumActions() int {
	return c.actions.Len()
}

// Candidates returns the ontology's default candidate set.
func (c *Codec) Candidates() codec.Candidates {
	return c.cands
}

// orDefault substitutes the ontology candidates for a nil set.
func (c *Codec) orDefault(cands codec.Candidates) codec.Candidates {
	if cands == nil {
		return c.cands
	}
	return cands
}

// TokenMatrix encodes one utterance's spans as candidate indices. A nil
// cands uses the ontology's candidate set; TokenMask is the candidate-free
// form.
func (c *Codec) TokenMatrix(tokens, tags []string, cands codec.Candidates) ([][]int, error) {
	mat, err := c.tokens.Build(tokens, tags, c.orDefault(cands))
	if err != nil {
		return nil, fmt.Errorf("slotmat: %w", err)
	}
	return mat, nil
}

// TokenMask encodes one utterance's spans as presence markers only.
func (c *Codec) TokenMask(tokens, tags []string) ([][]int, error) {
	mat, err := c.tokens.Build(tokens, tags, nil)
	if err != nil {
		return nil, fmt.Errorf("slotmat: %w", err)
	}
	return mat, nil
}

// ValueMatrix encodes a turn's state with default scores. A nil cands
// uses the ontology's candidate set.
func (c *Codec) ValueMatrix(state map[string]string, cands codec.Candidates) ([][]float64, error) {
	mat, err := c.values.BuildState(state, c.orDefault(cands))
	if err != nil {
		return nil, fmt.Errorf("slotmat: %w", err)
	}
	return mat, nil
}

// ValueMatrixScored encodes scored state records, for callers tracking
// per-assignment confidences.
func (c *Codec) ValueMatrixScored(state []codec.SlotValue, cands codec.Candidates) ([][]float64, error) {
	mat, err := c.values.Build(state, c.orDefault(cands))
	if err != nil {
		return nil, fmt.Errorf("slotmat: %w", err)
	}
	return mat, nil
}

// ActionMask encodes a turn's dialogue acts.
func (c *Codec) ActionMask(acts []codec.Action) ([][]float64, error) {
	mat, err := c.mask.Build(acts)
	if err != nil {
		return nil, fmt.Errorf("slotmat: %w", err)
	}
	return mat, nil
}

// DecodeState turns a value-index vector back into a slot/value map. A
// nil cands uses the ontology's candidate set.
func (c *Codec) DecodeState(values []int, cands codec.Candidates) (map[string]string, error) {
	state, err := c.decoder.Decode(values, c.orDefault(cands))
	if err != nil {
		return nil, fmt.Errorf("slotmat: %w", err)
	}
	return state, nil
}

// Delexicalize replaces slot-tagged tokens with #slot placeholders.
func (c *Codec) Delexicalize(tokens, tags []string) ([]string, error) {
	out, err := bio.Delexicalize(tokens, tags)
	if err != nil {
		return nil, fmt.Errorf("slotmat: %w", err)
	}
	return out, nil
}

// Spans extracts the slot spans of a tag sequence.
func (c *Codec) Spans(tags []string) ([]bio.Span, error) {
	spans, err := bio.Spans(tags)
	if err != nil {
		return nil, fmt.Errorf("slotmat: %w", err)
	}
	return spans, nil
}
