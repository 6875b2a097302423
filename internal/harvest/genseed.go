package harvest

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

const pagePlaceholder = "{page}"

// ExpandTemplates turns each template whose URL carries a {page}
// placeholder into one seed per page number, counting from 1.
// Templates without the placeholder pass through unchanged. Expanded
// seeds lose their pagination selector since the trail is already
// enumerated.
func ExpandTemplates(templates []Seed, pages int) []Seed {
	if pages < 1 {
		pages = 1
	}

	var seeds []Seed
	for _, tpl := range templates {
		if !strings.Contains(tpl.URL, pagePlaceholder) {
			seeds = append(seeds, tpl)
			continue
		}
		for page := 1; page <= pages; page++ {
			seed := tpl
			seed.URL = strings.ReplaceAll(tpl.URL, pagePlaceholder, strconv.Itoa(page))
			seed.Next = ""
			seeds = append(seeds, seed)
		}
	}
	return seeds
}

func writeSeeds(path string, seeds []Seed) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	for _, seed := range seeds {
		if err := enc.Encode(seed); err != nil {
			return err
		}
	}
	return nil
}
