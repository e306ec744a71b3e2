package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akandict-go-scraper/internal/models"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "akandict.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func report(records int) *models.Report {
	return &models.Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC().Truncate(time.Second),
		Duration:  2 * time.Second,
		Links:     3,
		Scraped:   2,
		Saved:     records,
	}
}

func TestSaveRunUpsertsWords(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	first := report(2)
	first.Failures = []models.FailedURL{{URL: "https://www.akandictionary.com/gone-page/", Stage: models.StageFetch, Reason: "unexpected http status 404"}}
	require.NoError(t, s.SaveRun(ctx, first, []models.WordRecord{
		{EnglishWord: "to shoot", TwiWord: "tuo", URL: "https://www.akandictionary.com/tuo/"},
		{EnglishWord: "to hit", TwiWord: "bɔ", PartOfSpeech: "verb", URL: "https://www.akandictionary.com/bo/"},
	}))

	second := report(1)
	second.StartedAt = first.StartedAt.Add(time.Minute)
	require.NoError(t, s.SaveRun(ctx, second, []models.WordRecord{
		{EnglishWord: "to strike", TwiWord: "bɔ", PartOfSpeech: "verb", URL: "https://www.akandictionary.com/bo/"},
	}))

	words, err := s.Words(ctx)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "to shoot", words[0].EnglishWord)
	assert.Equal(t, "to strike", words[1].EnglishWord)

	failures, err := s.Failures(ctx, first.RunID)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, models.StageFetch, failures[0].Stage)

	id, _, err := s.LastRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.RunID, id)
}

func TestSaveRunDuplicateRunIDFails(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	rep := report(0)
	require.NoError(t, s.SaveRun(ctx, rep, nil))
	require.Error(t, s.SaveRun(ctx, rep, nil))
}
