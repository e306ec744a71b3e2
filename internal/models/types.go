
package models

import "time"

// WordRecord is one dictionary entry harvested from a single word page.
type WordRecord struct {
	EnglishWord  string `json:"english_word"`
	TwiWord      string `json:"twi_word"`
	PartOfSpeech string `json:"part_of_speech"`
	URL          string `json:"url"`
}

// HasContent reports whether either translation field is populated.
func (r WordRecord) HasContent() bool {
	return r.EnglishWord != "" || r.TwiWord != ""
}

// CSVHeader is the column order used for tabular exports.
var CSVHeader = []string{"english_word", "twi_word", "part_of_speech", "url"}

// CSVRow returns the record's values in CSVHeader order.
func (r WordRecord) CSVRow() []string {
	return []string{r.EnglishWord, r.TwiWord, r.PartOfSpeech, r.URL}
}

type Fields struct {
	EnglishWord  string `json:"english_word,omitempty"`
	PartOfSpeech string `json:"part_of_speech,omitempty"`
}

type Stage string

const (
	StageSitemap Stage = "sitemap"
	StageFetch   Stage = "fetch"
	StageParse   Stage = "parse"
)

type FailedURL struct {
	URL    string `json:"url"`
	Stage  Stage  `json:"stage"`
	Reason string `json:"reason"`
}

type Report struct {
	RunID          string        `json:"runId"`
	StartedAt      time.Time     `json:"startedAt"`
	Duration       time.Duration `json:"duration"`
	SitemapsOK     int           `json:"sitemapsOk"`
	SitemapsFailed int           `json:"sitemapsFailed"`
	Links          int           `json:"links"`
	Scraped        int           `json:"scraped"`
	Retained       int           `json:"retained"`
	Saved          int           `json:"saved"`
	OutputPath     string        `json:"outputPath,omitempty"`
	Failures       []FailedURL   `json:"failures,omitempty"`
}
