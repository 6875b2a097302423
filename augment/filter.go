// Package augment decides which tokens of an utterance may be replaced
// when generating paraphrase data for training.
package augment

import (
	"math/rand/v2"
	"strings"

	"github.com/dialogkit/slotmat/internal/textutil"
)

// MorphTag describes one token's morphology, UD style. A non-empty Lemma
// takes precedence over the filter's lemmatizer.
type MorphTag struct {
	Token string `json:"source_token"`
	Pos   string `json:"pos_tag"`
	Lemma string `json:"lemma,omitempty"`
}

// Lemmatizer resolves a token to its dictionary form.
type Lemmatizer interface {
	Lemma(token, pos string) string
}

// WordFilter decides which tokens of an utterance may be replaced. The
// zero value admits nothing; use the language constructors or fill the
// fields explicitly.
type WordFilter struct {
	// ReplaceFreq is the probability that a token passing every
	// predicate is actually marked for replacement.
	ReplaceFreq float64
	// AlphaOnly restricts replacement to purely alphabetic tokens.
	AlphaOnly bool
	// KeepLemmas lists lemmas that are never replaced.
	KeepLemmas []string
	// AllowedPos lists the POS tags eligible for replacement.
	AllowedPos []string
	// Lemmatizer resolves lemmas for tags that do not carry one. Nil
	// means the lowercased token stands for itself.
	Lemmatizer Lemmatizer

	thereBeRule bool
}

// NewEnglishFilter returns a filter with the English defaults: content
// POS tags only, the rule-based English lemmatizer, and the existential
// "there is/are" rule.
func NewEnglishFilter(replaceFreq float64, alphaOnly bool) *WordFilter {
	return &WordFilter{
		ReplaceFreq: replaceFreq,
		AlphaOnly:   alphaOnly,
		AllowedPos:  []string{"ADJ", "ADV", "NOUN", "VERB"},
		Lemmatizer:  EnglishLemmatizer{},
		thereBeRule: true,
	}
}

// NewRussianFilter returns a filter with the Russian defaults: content
// POS tags plus numerals, and common preference verbs kept in place.
func NewRussianFilter(replaceFreq float64, alphaOnly bool) *WordFilter {
	return &WordFilter{
		ReplaceFreq: replaceFreq,
		AlphaOnly:   alphaOnly,
		KeepLemmas:  []string{"иметь", "обладать", "любить", "нравиться"},
		AllowedPos:  []string{"ADJ", "ADV", "NOUN", "VERB", "NUM"},
	}
}

// Replaceable reports per token whether every predicate admits it:
// eligible POS, lemma not kept, alphabetic when required. Sampling is
// not applied.
func (f *WordFilter) Replaceable(tags []MorphTag) []bool {
	out := f.posAllowed(tags)
	for i, tag := range tags {
		out[i] = out[i] && !f.kept(tag) && f.alphaOK(tag.Token)
	}
	return out
}

// Mark samples the final replacement decisions: a token admitted by
// Replaceable is marked with probability ReplaceFreq. Tokens rejected by
// a predicate are never marked, whatever the frequency.
func (f *WordFilter) Mark(tags []MorphTag) []bool {
	out := f.Replaceable(tags)
	for i, ok := range out {
		if ok {
			out[i] = rand.Float64() < f.ReplaceFreq
		}
	}
	return out
}

func (f *WordFilter) posAllowed(tags []MorphTag) []bool {
	out := make([]bool, len(tags))
	for i, tag := range tags {
		// Existential "there is/are": the verb carries no replaceable
		// content.
		if f.thereBeRule && i > 0 &&
			tags[i-1].Pos == "PRON" &&
			strings.EqualFold(tags[i-1].Token, "there") &&
			f.lemma(tag) == "be" {
			continue
		}
		for _, pos := range f.AllowedPos {
			if tag.Pos == pos {
				out[i] = true
				break
			}
		}
	}
	return out
}

func (f *WordFilter) lemma(tag MorphTag) string {
	if tag.Lemma != "" {
		return tag.Lemma
	}
	if f.Lemmatizer != nil {
		return f.Lemmatizer.Lemma(tag.Token, tag.Pos)
	}
	return strings.ToLower(tag.Token)
}

func (f *WordFilter) kept(tag MorphTag) bool {
	lemma := f.lemma(tag)
	for _, keep := range f.KeepLemmas {
		if lemma == keep {
			return true
		}
	}
	return false
}

func (f *WordFilter) alphaOK(token string) bool {
	return !f.AlphaOnly || textutil.IsAlpha(token)
}
