// Package sitemap discovers word page URLs from the site's XML sitemaps.
package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/net/html/charset"

	"akandict-go-scraper/internal/config"
	"akandict-go-scraper/internal/crawler"
	"akandict-go-scraper/internal/models"
)

type Collector struct {
	fetcher  crawler.Fetcher
	sitemaps []string
	domain   string
	minLen   int
	log      *slog.Logger
}

func NewCollector(f crawler.Fetcher, site config.SiteConfig, log *slog.Logger) *Collector {
	return &Collector{
		fetcher:  f,
		sitemaps: site.Sitemaps,
		domain:   site.Domain,
		minLen:   site.MinLinkLength,
		log:      log,
	}
}

// Collect walks the sitemaps one at a time and returns the unique word links
// they list. A sitemap that cannot be fetched or decoded is skipped and
// reported in failures.
func (c *Collector) Collect(ctx context.Context) ([]string, []models.FailedURL) {
	var (
		all      []string
		failures []models.FailedURL
	)
	for _, sm := range c.sitemaps {
		if ctx.Err() != nil {
			break
		}
		c.log.Info("processing sitemap", slog.String("url", sm))

		resp, err := c.fetcher.Fetch(ctx, sm)
		if err != nil {
			c.log.Debug("sitemap fetch failed", slog.String("url", sm), slog.String("error", err.Error()))
			failures = append(failures, models.FailedURL{URL: sm, Stage: models.StageSitemap, Reason: err.Error()})
			continue
		}
		locs, err := ParseLocations(bytes.NewReader(resp.Body))
		if err != nil {
			c.log.Debug("sitemap decode failed", slog.String("url", sm), slog.String("error", err.Error()))
			failures = append(failures, models.FailedURL{URL: sm, Stage: models.StageSitemap, Reason: err.Error()})
			continue
		}
		all = append(all, locs...)
	}

	links := lo.Uniq(FilterLinks(all, c.domain, c.minLen))
	c.log.Info("total unique links found", slog.Int("count", len(links)))
	return links, failures
}

type document struct {
	URLs     []entry `xml:"url"`
	Sitemaps []entry `xml:"sitemap"`
}

type entry struct {
	Loc string `xml:"loc"`
}

// ParseLocations returns every <loc> value of a urlset or sitemapindex
// document, in document order.
func ParseLocations(r io.Reader) ([]string, error) {
	var doc document
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode sitemap: %w", err)
	}
	locs := lo.Map(append(doc.URLs, doc.Sitemaps...), func(e entry, _ int) string {
		return strings.TrimSpace(e.Loc)
	})
	return lo.Compact(locs), nil
}

// FilterLinks keeps links that mention domain and are longer than minLen
// characters. Shorter links are the site root and index pages.
func FilterLinks(links []string, domain string, minLen int) []string {
	return lo.Filter(links, func(l string, _ int) bool {
		return strings.Contains(l, domain) && utf8.RuneCountInString(l) > minLen
	})
}
