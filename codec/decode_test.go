package codec

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dialogkit/slotmat/vocab"
)

func TestDecode(t *testing.T) {
	slots := vocab.New("city", "food")
	d := NewStateDecoder(slots, nil)
	cands := Candidates{
		"city": {"Paris Texas", "London"},
		"food": {"steak"},
	}

	tests := []struct {
		values []int
		want   map[string]string
	}{
		{[]int{1, 0}, map[string]string{"city": "London", "food": "steak"}},
		{[]int{0, 0}, map[string]string{"city": "Paris Texas", "food": "steak"}},
		// Positions past the candidate list clamp to 0.
		{[]int{5, 0}, map[string]string{"city": "Paris Texas", "food": "steak"}},
		{[]int{-1, 0}, map[string]string{"city": "Paris Texas", "food": "steak"}},
	}
	for _, tt := range tests {
		got, err := d.Decode(tt.values, cands)
		if err != nil {
			t.Errorf("Decode(%v) error = %v", tt.values, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Decode(%v) = %v, want %v", tt.values, got, tt.want)
		}
	}
}

func TestDecodeExcludeValues(t *testing.T) {
	slots := vocab.New("city", "food")
	d := NewStateDecoder(slots, []string{"none"})
	cands := Candidates{
		"city": {"none", "London"},
		"food": {"none", "steak"},
	}

	got, err := d.Decode([]int{0, 1}, cands)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	// city decoded to an excluded value and is dropped.
	want := map[string]string{"food": "steak"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %v, want %v", got, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	slots := vocab.New("city", "food")
	d := NewStateDecoder(slots, nil)

	_, err := d.Decode([]int{0}, Candidates{"city": {"a"}, "food": {"b"}})
	if err == nil {
		t.Error("short vector: expected error")
	}

	_, err = d.Decode([]int{0, 0}, Candidates{"city": {"a"}})
	if !errors.Is(err, ErrSlotCandidates) {
		t.Errorf("missing slot: error = %v, want ErrSlotCandidates", err)
	}

	_, err = d.Decode([]int{0, 0}, Candidates{"city": {"a"}, "food": {}})
	if err == nil {
		t.Error("empty candidate list: expected error")
	}
}

func TestDecodeBatch(t *testing.T) {
	slots := vocab.New("city")
	d := NewStateDecoder(slots, nil)
	cands := Candidates{"city": {"London"}}

	got, err := d.DecodeBatch([]int{0}, []Candidates{cands})
	if err != nil {
		t.Fatalf("DecodeBatch error = %v", err)
	}
	want := []map[string]string{{"city": "London"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeBatch = %v, want %v", got, want)
	}

	_, err = d.DecodeBatch([]int{0}, []Candidates{cands, cands})
	if !errors.Is(err, ErrCandidateBatch) {
		t.Errorf("candidate batch len 2: error = %v, want ErrCandidateBatch", err)
	}
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

func TestValueRoundTrip(t *testing.T) {
	slots := vocab.New("city", "food")
	builder := NewValueMatrixBuilder(slots, 2)
	decoder := NewStateDecoder(slots, []string{"none"})
	cands := Candidates{
		"city": {"none", "Paris Texas", "London"},
		"food": {"none", "steak"},
	}

	states := []map[string]string{
		{"city": "London"},
		{"city": "Paris Texas", "food": "steak"},
		{},
	}
	for _, state := range states {
		mat, err := builder.BuildState(state, cands)
		if err != nil {
			t.Errorf("BuildState(%v) error = %v", state, err)
			continue
		}
		got, err := decoder.Decode(argmaxRows(mat), cands)
		if err != nil {
			t.Errorf("Decode after BuildState(%v) error = %v", state, err)
			continue
		}
		if !reflect.DeepEqual(got, state) {
			t.Errorf("round trip of %v = %v", state, got)
		}
	}
}
