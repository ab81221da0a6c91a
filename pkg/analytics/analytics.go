// Package analytics provides word-frequency analysis over extracted text.
// The classifier uses frequencies for keyword scoring and request history
// records the top keywords per summarized document.
package analytics

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are filtered out of frequency counts. The list covers common
// English function words plus web/UI noise that survives markup stripping.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a about above after again against all also am an and any are as at
		be because been before being below between both but by
		can cannot could did do does doing down during
		each few for from further
		had has have having he her here hers herself him himself his how
		i if in into is it its itself just
		like me more most much must my myself
		no nor not now of off on once one only or other our ours ourselves
		out over own
		said same she should so some such
		than that the their theirs them themselves then there these they
		this those through to too
		under until up upon us very
		was we were what when where which while who whom why will with would
		you your yours yourself yourselves
		dont didnt doesnt isnt wasnt wont cant couldnt shouldnt wouldnt its
		click clicked link menu button page pages website site home homepage
		search loading loaded subscribe cookie cookies privacy
	`) {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether word is filtered from frequency analysis.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// WordFrequency counts occurrences of each non-stopword in text. Words are
// lowercased and stripped of surrounding punctuation.
func WordFrequency(text string) map[string]int {
	freq := make(map[string]int)
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		word := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		freq[word]++
	}
	return freq
}

// Keyword pairs a word with its occurrence count.
type Keyword struct {
	Word  string
	Count int
}

// TopKeywords returns the n most frequent keywords, most frequent first.
// Ties are broken alphabetically so output is deterministic.
func TopKeywords(freq map[string]int, n int) []Keyword {
	keywords := make([]Keyword, 0, len(freq))
	for w, c := range freq {
		keywords = append(keywords, Keyword{Word: w, Count: c})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Word < keywords[j].Word
	})
	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}

// TopWords is TopKeywords reduced to the bare words.
func TopWords(text string, n int) []string {
	keywords := TopKeywords(WordFrequency(text), n)
	words := make([]string, len(keywords))
	for i, k := range keywords {
		words[i] = k.Word
	}
	return words
}
