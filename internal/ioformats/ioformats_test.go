package ioformats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akandict-go-scraper/internal/models"
)

var records = []models.WordRecord{
	{EnglishWord: "to hit", TwiWord: "bɔ", PartOfSpeech: "verb", URL: "https://www.akandictionary.com/bo-to-hit/"},
	{EnglishWord: "gun, rifle", TwiWord: "tuo", PartOfSpeech: "noun", URL: "https://www.akandictionary.com/tuo-gun/"},
}

func TestWriteRecordsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Desktop", "eng_akan_dict_final.csv")
	require.NoError(t, WriteRecords(path, records))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "english_word,twi_word,part_of_speech,url\n" +
		"to hit,bɔ,verb,https://www.akandictionary.com/bo-to-hit/\n" +
		"\"gun, rifle\",tuo,noun,https://www.akandictionary.com/tuo-gun/\n"
	assert.Equal(t, want, string(b))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteRecordsNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.ndjson")
	require.NoError(t, WriteRecords(path, records[:1]))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"english_word":"to hit","twi_word":"bɔ","part_of_speech":"verb","url":"https://www.akandictionary.com/bo-to-hit/"}`+"\n", string(b))
}

func TestReadURLsRoundTripsExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteRecords(path, records))

	urls, err := ReadURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{records[0].URL, records[1].URL}, urls)
}

func TestReadURLsNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.ndjson")
	content := strings.Join([]string{
		`{"url":"https://www.akandictionary.com/a-word-page/"}`,
		``,
		`https://www.akandictionary.com/b-word-page/`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := ReadURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.akandictionary.com/a-word-page/",
		"https://www.akandictionary.com/b-word-page/",
	}, urls)
}

func TestReadURLsCSVWithoutURLColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("link\nhttps://x\n"), 0o644))

	_, err := ReadURLs(path)
	require.Error(t, err)
}
