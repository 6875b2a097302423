package augment

import "strings"

// EnglishLemmatizer reduces English word forms to dictionary lemmas with
// an irregular-form table and suffix rules. It covers the forms the
// filtering rules depend on, not full English morphology.
type EnglishLemmatizer struct{}

var irregularLemmas = map[string]string{
	"am": "be", "is": "be", "are": "be", "was": "be", "were": "be",
	"been": "be", "being": "be", "'s": "be", "'re": "be", "'m": "be",
	"has": "have", "had": "have", "having": "have",
	"does": "do", "did": "do", "done": "do",
	"goes": "go", "went": "go", "gone": "go",
	"better": "good", "best": "good",
	"worse": "bad", "worst": "bad",
	"children": "child", "men": "man", "women": "woman",
	"people": "person", "feet": "foot", "teeth": "tooth", "mice": "mouse",
}

// Lemma resolves token to a lemma, using pos to pick the suffix rules.
func (EnglishLemmatizer) Lemma(token, pos string) string {
	w := strings.ToLower(token)
	if lemma, ok := irregularLemmas[w]; ok {
		return lemma
	}
	switch pos {
	case "VERB", "AUX":
		return stripVerbSuffix(w)
	case "NOUN":
		return stripNounSuffix(w)
	}
	return w
}

func stripVerbSuffix(w string) string {
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		return undouble(w[:len(w)-3])
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		stem := undouble(w[:len(w)-2])
		if strings.HasSuffix(stem, "i") {
			stem = stem[:len(stem)-1] + "y"
		}
		return stem
	case hasSibilantES(w):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 3:
		return w[:len(w)-1]
	}
	return w
}

func stripNounSuffix(w string) string {
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case hasSibilantES(w):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 3:
		return w[:len(w)-1]
	}
	return w
}

// hasSibilantES reports an "es" suffix following s, x, z, ch, or sh,
// where the whole "es" was appended.
func hasSibilantES(w string) bool {
	if !strings.HasSuffix(w, "es") || len(w) < 5 {
		return false
	}
	base := w[:len(w)-2]
	return strings.HasSuffix(base, "s") || strings.HasSuffix(base, "x") ||
		strings.HasSuffix(base, "z") || strings.HasSuffix(base, "ch") ||
		strings.HasSuffix(base, "sh")
}

// undouble drops one of a doubled trailing consonant, except the
// legitimate ll, ss, zz endings.
func undouble(w string) string {
	n := len(w)
	if n < 3 || w[n-1] != w[n-2] {
		return w
	}
	switch w[n-1] {
	case 'l', 's', 'z', 'a', 'e', 'i', 'o', 'u':
		return w
	}
	return w[:n-1]
}
