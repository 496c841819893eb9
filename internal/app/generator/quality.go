package generator

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	referenceLength       = 500.0
	referenceSentenceSize = 15.0
)

// QualityScore rates generated text in [0, 1] by blending word count accuracy,
// overall length and average sentence length.
func QualityScore(text string, targetWords int) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	words := float64(len(strings.Fields(text)))
	target := float64(targetWords)

	var ratio float64
	if words > 0 && target > 0 {
		ratio = math.Min(words/target, target/words)
	}

	lengthScore := math.Min(float64(utf8.RuneCountInString(text))/referenceLength, 1)

	sentences := strings.Split(text, ".")
	var sentenceWords int
	for _, s := range sentences {
		sentenceWords += len(strings.Fields(s))
	}
	avg := float64(sentenceWords) / float64(len(sentences))
	sentenceScore := math.Min(avg/referenceSentenceSize, 1)

	score := ratio*0.4 + lengthScore*0.3 + sentenceScore*0.3
	return math.Min(score, 1)
}
