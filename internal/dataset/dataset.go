// Package dataset loads the on-disk dialogue dataset: an ontology with
// slot candidate lists and action names, plus BIO-tagged turns in JSONL.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dialogkit/slotmat/codec"
)

// File names expected inside a dataset folder.
const (
	OntologyFile = "ontology.json"
	TurnsFile    = "turns.jsonl"
)

// Ontology describes the dataset's slots, their candidate values, and the
// action inventory.
type Ontology struct {
	Slots   map[string][]string `json:"slots"`
	Actions []string            `json:"actions,omitempty"`
}

// SlotNames returns the slot names in sorted order.
func (o *Ontology) SlotNames() []string {
	names := make([]string, 0, len(o.Slots))
	for name := range o.Slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Candidates returns the ontology's slot/value lists as a candidate set.
func (o *Ontology) Candidates() codec.Candidates {
	c := make(codec.Candidates, len(o.Slots))
	for slot, values := range o.Slots {
		c[slot] = values
	}
	return c
}

// MaxValues returns the length of the longest candidate list.
func (o *Ontology) MaxValues() int {
	longest := 0
	for _, values := range o.Slots {
		if len(values) > longest {
			longest = len(values)
		}
	}
	return longest
}

// Turn is one dialogue turn: parallel tokens and BIO tags, with optional
// gold state, dialogue acts, and per-turn candidate overrides.
type Turn struct {
	Tokens     []string            `json:"tokens"`
	Tags       []string            `json:"tags"`
	State      map[string]string   `json:"state,omitempty"`
	Acts       []codec.Action      `json:"acts,omitempty"`
	Candidates map[string][]string `json:"candidates,omitempty"`
}

// Storage wraps a dataset folder.
type Storage struct {
	Folder string
}

// NewStorage creates a Storage for the given dataset folder.
func NewStorage(folder string) *Storage {
	return &Storage{Folder: folder}
}

// Ontology reads and validates the ontology file.
func (s *Storage) Ontology() (*Ontology, error) {
	data, err := os.ReadFile(filepath.Join(s.Folder, OntologyFile))
	if err != nil {
		return nil, err
	}
	var ont Ontology
	if err := json.Unmarshal(data, &ont); err != nil {
		return nil, fmt.Errorf("parse %s: %w", OntologyFile, err)
	}
	if len(ont.Slots) == 0 {
		return nil, fmt.Errorf("%s lists no slots", OntologyFile)
	}
	return &ont, nil
}

// ReadTurns loads every turn from the turns file.
func (s *Storage) ReadTurns() ([]Turn, error) {
	var turns []Turn
	err := s.IterTurns(func(t Turn) error {
		turns = append(turns, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return turns, nil
}

// IterTurns streams turns to fn in file order, stopping at the first error
// fn returns. Blank lines and lines starting with # are skipped; lines
// that fail to parse are skipped with a warning. Semantic validation of a
// turn's content is the caller's concern.
func (s *Storage) IterTurns(fn func(Turn) error) error {
	path := filepath.Join(s.Folder, TurnsFile)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var turn Turn
		if err := json.Unmarshal([]byte(line), &turn); err != nil {
			slog.Warn("Skipping invalid turn line", "file", path, "line", lineNum, "error", err)
			continue
		}
		if err := fn(turn); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ActionNames scans the turns file and returns action names in first-seen
// order.
func (s *Storage) ActionNames() ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	err := s.IterTurns(func(t Turn) error {
		for _, a := range t.Acts {
			if !seen[a.Act] {
				seen[a.Act] = true
				names = append(names, a.Act)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
