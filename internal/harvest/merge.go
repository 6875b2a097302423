package harvest

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/dialogkit/slotmat/internal/dataset"
)

// MergeOntology folds harvested values into an ontology. Existing
// candidates keep their positions and new values are appended after
// them in sorted order, so matrices encoded against the old ontology
// stay valid. Returns the number of values added.
func MergeOntology(ont *dataset.Ontology, values Values) int {
	if ont.Slots == nil {
		ont.Slots = make(map[string][]string)
	}

	added := 0
	for slot, vals := range values {
		seen := make(map[string]bool, len(ont.Slots[slot]))
		for _, v := range ont.Slots[slot] {
			seen[v] = true
		}
		var fresh []string
		for _, v := range vals {
			if !seen[v] {
				seen[v] = true
				fresh = append(fresh, v)
			}
		}
		sort.Strings(fresh)
		ont.Slots[slot] = append(ont.Slots[slot], fresh...)
		added += len(fresh)
	}
	return added
}

// loadOntology reads an ontology file, returning an empty ontology when
// the file does not exist yet.
func loadOntology(path string) (*dataset.Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &dataset.Ontology{Slots: make(map[string][]string)}, nil
		}
		return nil, err
	}
	var ont dataset.Ontology
	if err := json.Unmarshal(data, &ont); err != nil {
		return nil, err
	}
	return &ont, nil
}

func saveOntology(path string, ont *dataset.Ontology) error {
	data, err := json.MarshalIndent(ont, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
