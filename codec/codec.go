// Package codec builds the dense matrix views of a dialogue turn: a
// slot-per-token matrix, a slot-value score matrix, and a slot-action
// mask, plus the inverse decoding of a value-index vector back into a
// slot/value map.
//
// Builders and the decoder are immutable after construction and safe for
// concurrent use. They perform no I/O.
package codec

import "fmt"

// Candidates maps a slot name to its ordered candidate values for one turn.
type Candidates map[string][]string

// singleCandidates unwraps the upstream pipeline's candidate batch, which
// must hold exactly one set per call.
func singleCandidates(batch []Candidates) (Candidates, error) {
	if len(batch) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrCandidateBatch, len(batch))
	}
	return batch[0], nil
}

func intMatrix(rows, cols int) [][]int {
	m := make([][]int, rows)
	for i := range m {
		m[i] = make([]int, cols)
	}
	return m
}

func floatMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func indexOf(values []string, value string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}
