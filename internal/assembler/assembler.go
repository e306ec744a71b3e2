package assembler

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"akandict-go-scraper/internal/models"
)

// Assemble drops nil and empty results and sorts the rest by english_word.
// Keys compare byte-wise, so uppercase sorts before lowercase. Equal keys
// are ordered by url, which keeps repeated runs byte-identical.
func Assemble(results []*models.WordRecord) []models.WordRecord {
	kept := lo.FilterMap(results, func(r *models.WordRecord, _ int) (models.WordRecord, bool) {
		if r == nil || !r.HasContent() {
			return models.WordRecord{}, false
		}
		return *r, true
	})
	slices.SortStableFunc(kept, func(a, b models.WordRecord) int {
		return cmp.Or(
			cmp.Compare(a.EnglishWord, b.EnglishWord),
			cmp.Compare(a.URL, b.URL),
		)
	})
	return kept
}
