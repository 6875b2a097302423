package slotmat

import (
	"testing"
)

const checkOntology = `{
  "slots": {
    "city": ["none", "Paris Texas", "London"],
    "food": ["none", "steak"]
  },
  "actions": ["inform", "bye"]
}`

const checkTurns = `{"tokens": ["I", "want", "Paris", "Texas"], "tags": ["O", "O", "B-city", "I-city"], "state": {"city": "Paris Texas"}, "acts": [{"act": "inform", "slots": ["city"]}]}
{"tokens": ["a"], "tags": ["X-city"]}
{"tokens": ["a", "b"], "tags": ["O"]}
{"tokens": ["Berlin"], "tags": ["B-city"]}
{"tokens": ["x"], "tags": ["B-galaxy"]}
{"tokens": ["bye"], "tags": ["O"], "acts": [{"act": "dance"}]}
{"tokens": ["hmm"], "tags": ["O"], "state": {"city": "Atlantis"}}
`

func TestCheck(t *testing.T) {
	dir := writeTestDataset(t, checkOntology, checkTurns)

	result, err := Check(dir, &CheckConfig{
		Codec: &Config{ExcludeValues: []string{"none"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := CheckResult{
		Turns:           7,
		OK:              1,
		LengthErrors:    1,
		TagErrors:       1,
		UnknownSlots:    1,
		UnknownActions:  1,
		CandidateMisses: 1,
		RoundTripMisses: 1,
	}
	if *result != want {
		t.Errorf("Check = %+v, want %+v", *result, want)
	}
	if !result.Failed() {
		t.Error("Failed() = false with problem turns")
	}
	if result.String() == "" {
		t.Error("String() is empty")
	}
}

func TestCheckCleanDataset(t *testing.T) {
	turns := `{"tokens": ["to", "London"], "tags": ["O", "B-city"], "state": {"city": "London"}, "acts": [{"act": "inform", "slots": ["city"]}]}
{"tokens": ["steak", "please"], "tags": ["B-food", "O"], "state": {"food": "steak"}}
`
	dir := writeTestDataset(t, checkOntology, turns)

	result, err := Check(dir, &CheckConfig{
		Codec: &Config{ExcludeValues: []string{"none"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Failed() {
		t.Errorf("Failed() = true for clean dataset: %v", result)
	}
	if result.Turns != 2 || result.OK != 2 {
		t.Errorf("Turns, OK = %d, %d, want 2, 2", result.Turns, result.OK)
	}
}

func TestCheckMissingDataset(t *testing.T) {
	if _, err := Check(t.TempDir(), nil); err == nil {
		t.Error("expected error for missing dataset")
	}
}
