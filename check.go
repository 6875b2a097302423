package slotmat

import (
	"errors"
	"fmt"

	"github.com/dialogkit/slotmat/bio"
	"github.com/dialogkit/slotmat/codec"
	"github.com/dialogkit/slotmat/internal/dataset"
)

// CheckConfig holds configuration for dataset checking.
type CheckConfig struct {
	Codec *Config
}

// CheckResult summarizes a dataset validation run.
type CheckResult struct {
	Turns           int
	OK              int
	LengthErrors    int
	TagErrors       int
	UnknownSlots    int
	UnknownActions  int
	CandidateMisses int
	RoundTripMisses int
}

// Failed reports whether any turn had a problem.
func (r *CheckResult) Failed() bool {
	return r.OK != r.Turns
}

// String renders a one-line summary.
func (r *CheckResult) String() string {
	return fmt.Sprintf("%d/%d turns ok (length %d, tag %d, unknown-slot %d, unknown-action %d, candidate %d, round-trip %d)",
		r.OK, r.Turns, r.LengthErrors, r.TagErrors, r.UnknownSlots,
		r.UnknownActions, r.CandidateMisses, r.RoundTripMisses)
}

// Check validates every turn in a dataset folder against its ontology:
// token/tag parallelism, tag grammar, token matrix building, value matrix
// building with a state round trip through value-index decoding, and
// action mask building. Configure ExcludeValues with the dataset's
// "no value" sentinel so that slots absent from a turn's state do not
// count as round-trip misses.
func Check(dataDir string, config *CheckConfig) (*CheckResult, error) {
	var codecConfig *Config
	if config != nil {
		codecConfig = config.Codec
	}
	c, err := Load(dataDir, codecConfig)
	if err != nil {
		return nil, err
	}

	store := dataset.NewStorage(dataDir)
	result := &CheckResult{}
	err = store.IterTurns(func(turn dataset.Turn) error {
		result.Turns++
		if checkTurn(c, turn, result) {
			result.OK++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("slotmat: %w", err)
	}
	return result, nil
}

// checkTurn validates one turn, tallying problems, and reports whether
// the turn was clean.
func checkTurn(c *Codec, turn dataset.Turn, r *CheckResult) bool {
	if len(turn.Tokens) != len(turn.Tags) {
		r.LengthErrors++
		return false
	}
	ok := true
	cands := codec.Candidates(turn.Candidates)

	if _, err := c.TokenMatrix(turn.Tokens, turn.Tags, cands); err != nil {
		ok = false
		switch {
		case errors.Is(err, bio.ErrTagFormat):
			r.TagErrors++
		case errors.Is(err, codec.ErrUnknownSlot):
			r.UnknownSlots++
		case errors.Is(err, codec.ErrSlotCandidates), errors.Is(err, codec.ErrValueCandidates):
			r.CandidateMisses++
		}
	}

	if len(turn.State) > 0 {
		mat, err := c.ValueMatrix(turn.State, cands)
		switch {
		case errors.Is(err, codec.ErrUnknownSlot):
			ok = false
			r.UnknownSlots++
		case errors.Is(err, codec.ErrSlotCandidates):
			ok = false
			r.CandidateMisses++
		case err != nil:
			ok = false
		default:
			decoded, err := c.DecodeState(argmaxRows(mat), cands)
			if err != nil {
				ok = false
				r.CandidateMisses++
			} else if !stateEqual(decoded, turn.State) {
				ok = false
				r.RoundTripMisses++
			}
		}
	}

	if len(turn.Acts) > 0 {
		if _, err := c.ActionMask(turn.Acts); err != nil {
			ok = false
			switch {
			case errors.Is(err, codec.ErrUnknownAction):
				r.UnknownActions++
			case errors.Is(err, codec.ErrUnknownSlot):
				r.UnknownSlots++
			}
		}
	}
	return ok
}

func argmaxRows(mat [][]float64) []int {
	out := make([]int, len(mat))
	for i, row := range mat {
		best := 0
		for j, v := range row {
			if v > row[best] {
				best = j
			}
		}
		out[i] = best
	}
	return out
}

func stateEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
