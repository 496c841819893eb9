package generator_test

import (
	"strings"
	"testing"

	"contentgenius/internal/app/generator"

	"github.com/stretchr/testify/assert"
)

func TestQualityScoreEmpty(t *testing.T) {
	assert.Equal(t, 0.0, generator.QualityScore("", 800))
	assert.Equal(t, 0.0, generator.QualityScore("   \n\t", 800))
}

func TestQualityScoreOnTarget(t *testing.T) {
	sentence := strings.Repeat("word ", 14) + "word."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 10))

	// 150 words over 11 segments, the last one empty after the final period.
	expected := 0.4 + 0.3 + 0.3*(150.0/11/15)
	assert.InDelta(t, expected, generator.QualityScore(text, 150), 1e-9)
}

func TestQualityScoreShortText(t *testing.T) {
	expected := 0.4*(2.0/100) + 0.3*(12.0/500) + 0.3*(1.0/15)
	assert.InDelta(t, expected, generator.QualityScore("Hello world.", 100), 1e-9)
}

func TestQualityScoreOvershoot(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta epsilon. ", 100)

	// 500 words for a 250 word target counts the same as 125 words would.
	score := generator.QualityScore(text, 250)
	assert.InDelta(t, 0.4*0.5+0.3+0.3*(500.0/101/15), score, 1e-9)
}

func TestQualityScoreBounds(t *testing.T) {
	samples := []string{
		"a",
		"No punctuation at all just a long run of words that keeps going and going without a stop",
		strings.Repeat("x", 5000),
		strings.Repeat("Long sentence with many many words inside it that never seems to end ", 40),
		"....",
	}
	for _, s := range samples {
		for _, target := range []int{0, 1, 150, 800, 4000} {
			score := generator.QualityScore(s, target)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestTokenBudget(t *testing.T) {
	assert.Equal(t, 1600, generator.TokenBudget(800))
	assert.Equal(t, 4000, generator.TokenBudget(2000))
	assert.Equal(t, 4000, generator.TokenBudget(5000))
	assert.Equal(t, 300, generator.TokenBudget(150))
	assert.Equal(t, 4000, generator.TokenBudget(0))
}
