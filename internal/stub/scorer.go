package stub

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jwulff/cineai/internal/catalog"
)

// TopN is how many ranked genres a prediction returns.
const TopN = 5

// keywordWeight scales hits before the softmax so one keyword clearly leads.
const keywordWeight = 1.5

// minPrefixRunes is the shortest keyword matched as a prefix, so Turkish
// suffixes ("galaksiler", "savaşın") still count.
const minPrefixRunes = 4

// Scored is a genre with its probability in [0,1].
type Scored struct {
	Genre       catalog.Genre
	Probability float64
}

// Score ranks every genre by keyword hits, softmaxed, highest first. Ties
// keep catalog key order.
func Score(genres []catalog.Genre, text string) []Scored {
	if len(genres) == 0 {
		return nil
	}
	tokens := tokenize(text)

	logits := make([]float64, len(genres))
	maxLogit := math.Inf(-1)
	for i, g := range genres {
		logits[i] = keywordWeight * float64(hits(g.Keywords, tokens))
		maxLogit = math.Max(maxLogit, logits[i])
	}

	var sum float64
	out := make([]Scored, len(genres))
	for i, g := range genres {
		e := math.Exp(logits[i] - maxLogit)
		out[i] = Scored{Genre: g, Probability: e}
		sum += e
	}
	for i := range out {
		out[i].Probability /= sum
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Probability > out[b].Probability
	})
	return out
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

func hits(keywords, tokens []string) int {
	n := 0
	for _, tok := range tokens {
		for _, kw := range keywords {
			if tok == kw || (utf8.RuneCountInString(kw) >= minPrefixRunes && strings.HasPrefix(tok, kw)) {
				n++
				break
			}
		}
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
