
package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"akandict-go-scraper/internal/models"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, KindPartOfSpeech, Classify("Part of Speech: verb"))
	assert.Equal(t, KindPartOfSpeech, Classify("PART OF SPEECH: noun"))
	assert.Equal(t, KindEnglish, Classify("English: to hit"))
	assert.Equal(t, KindEnglish, Classify("ENGLISH - to shoot"))
	assert.Equal(t, KindOther, Classify("Example: Kofi bɔɔ no."))
	assert.Equal(t, KindPartOfSpeech, Classify("English part of speech: noun"))
	assert.Equal(t, "english", KindEnglish.String())
}

func TestExtractFields(t *testing.T) {
	got := ExtractFields([]string{
		"Pronunciation: bɔ",
		"English: to hit",
		"Part of speech: verb",
	})
	assert.Equal(t, models.Fields{EnglishWord: "to hit", PartOfSpeech: "verb"}, got)
}

func TestExtractFieldsHyphenFallback(t *testing.T) {
	got := ExtractFields([]string{"English - to shoot"})
	assert.Equal(t, "to shoot", got.EnglishWord)
}

func TestExtractFieldsColonPreferredOverHyphen(t *testing.T) {
	got := ExtractFields([]string{"English-ish meaning: well-known"})
	assert.Equal(t, "well-known", got.EnglishWord)
}

func TestExtractFieldsNoDelimiterLeavesEmpty(t *testing.T) {
	got := ExtractFields([]string{"See the English translation below"})
	assert.Empty(t, got.EnglishWord)
}

func TestExtractFieldsPartOfSpeechDoesNotSetEnglish(t *testing.T) {
	got := ExtractFields([]string{"English part of speech: noun"})
	assert.Equal(t, "noun", got.PartOfSpeech)
	assert.Empty(t, got.EnglishWord)
}

func TestExtractFieldsLastMatchWins(t *testing.T) {
	got := ExtractFields([]string{
		"Part of speech: noun",
		"English: shot",
		"Part of speech: verb",
		"English: to shoot",
	})
	assert.Equal(t, "verb", got.PartOfSpeech)
	assert.Equal(t, "to shoot", got.EnglishWord)
}

func TestExtractFieldsSplitsOnFirstColon(t *testing.T) {
	got := ExtractFields([]string{"English: time: hour"})
	assert.Equal(t, "time: hour", got.EnglishWord)
}

func TestExtractFieldsEmpty(t *testing.T) {
	assert.Equal(t, models.Fields{}, ExtractFields(nil))
}
