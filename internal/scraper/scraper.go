// Package scraper runs the harvest job: discover word links, scrape every
// page through a bounded pool, assemble the records and export them.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"akandict-go-scraper/internal/assembler"
	"akandict-go-scraper/internal/config"
	"akandict-go-scraper/internal/crawler"
	"akandict-go-scraper/internal/ioformats"
	"akandict-go-scraper/internal/metrics"
	"akandict-go-scraper/internal/models"
	"akandict-go-scraper/internal/parser"
	"akandict-go-scraper/internal/sitemap"
	"akandict-go-scraper/internal/store"
)

// Deps are the collaborators shared by every page worker. Store and
// Metrics are optional.
type Deps struct {
	Fetcher crawler.Fetcher
	Store   *store.Store
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

type Scraper struct {
	fetcher    crawler.Fetcher
	collector  *sitemap.Collector
	parser     *parser.Parser
	workers    int
	sitemaps   int
	exportPath string
	store      *store.Store
	metrics    *metrics.Metrics
	log        *slog.Logger
}

// New wires a Scraper. exportPath is where Run writes the final table; it
// may be empty for callers that only use Scrape.
func New(cfg *config.Config, exportPath string, d Deps) (*Scraper, error) {
	p, err := parser.New(cfg.Site)
	if err != nil {
		return nil, err
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	return &Scraper{
		fetcher:    d.Fetcher,
		collector:  sitemap.NewCollector(d.Fetcher, cfg.Site, d.Logger),
		parser:     p,
		workers:    cfg.Scrape.Workers,
		sitemaps:   len(cfg.Site.Sitemaps),
		exportPath: exportPath,
		store:      d.Store,
		metrics:    d.Metrics,
		log:        d.Logger,
	}, nil
}

// ScrapePage fetches and parses one word page. It never fails: on any error
// the record is nil and the failure says why.
func (s *Scraper) ScrapePage(ctx context.Context, pageURL string) (*models.WordRecord, *models.FailedURL) {
	resp, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		s.metrics.Pages.WithLabelValues(metrics.ResultFetchError).Inc()
		s.log.Debug("page fetch failed", slog.String("url", pageURL), slog.String("error", err.Error()))
		return nil, &models.FailedURL{URL: pageURL, Stage: models.StageFetch, Reason: err.Error()}
	}
	s.metrics.FetchDuration.Observe(resp.Elapsed.Seconds())

	rec, err := s.parser.Parse(resp.Body, resp.ContentType, pageURL)
	if err != nil {
		s.metrics.Pages.WithLabelValues(metrics.ResultParseError).Inc()
		s.log.Debug("page parse failed", slog.String("url", pageURL), slog.String("error", err.Error()))
		return nil, &models.FailedURL{URL: pageURL, Stage: models.StageParse, Reason: err.Error()}
	}
	s.metrics.Pages.WithLabelValues(metrics.ResultOK).Inc()
	return rec, nil
}

type pageResult struct {
	rec  *models.WordRecord
	fail *models.FailedURL
}

// Scrape runs ScrapePage over the unique urls with the configured pool
// width and returns the assembled records plus per-page failures in input order.
func (s *Scraper) Scrape(ctx context.Context, urls []string) ([]models.WordRecord, []models.FailedURL) {
	results := crawler.Map(ctx, s.workers, lo.Uniq(urls), func(ctx context.Context, u string) pageResult {
		rec, fail := s.ScrapePage(ctx, u)
		return pageResult{rec: rec, fail: fail}
	})

	recs := make([]*models.WordRecord, 0, len(results))
	var failures []models.FailedURL
	for _, r := range results {
		recs = append(recs, r.rec)
		if r.fail != nil {
			failures = append(failures, *r.fail)
		}
	}
	return assembler.Assemble(recs), failures
}

// Run discovers links from the sitemaps and harvests them.
func (s *Scraper) Run(ctx context.Context) (*models.Report, error) {
	rep := s.newReport()
	links, failures := s.collector.Collect(ctx)
	rep.SitemapsFailed = len(failures)
	rep.SitemapsOK = s.sitemaps - len(failures)
	rep.Failures = append(rep.Failures, failures...)
	s.metrics.Sitemaps.WithLabelValues(metrics.ResultOK).Add(float64(rep.SitemapsOK))
	s.metrics.Sitemaps.WithLabelValues(metrics.ResultFetchError).Add(float64(rep.SitemapsFailed))

	if err := ctx.Err(); err != nil {
		return s.finish(rep), fmt.Errorf("scrape interrupted: %w", err)
	}
	if len(links) == 0 {
		s.log.Info("no word links found, nothing to scrape")
		return s.finish(rep), nil
	}
	return s.harvest(ctx, rep, links)
}

// RunURLs harvests an explicit URL list, skipping sitemap discovery.
func (s *Scraper) RunURLs(ctx context.Context, urls []string) (*models.Report, error) {
	rep := s.newReport()
	links := lo.Uniq(urls)
	if len(links) == 0 {
		s.log.Info("no word links given, nothing to scrape")
		return s.finish(rep), nil
	}
	return s.harvest(ctx, rep, links)
}

func (s *Scraper) harvest(ctx context.Context, rep *models.Report, links []string) (*models.Report, error) {
	rep.Links = len(links)
	s.metrics.Links.Set(float64(len(links)))
	s.log.Info("scraping word pages", slog.Int("count", len(links)))

	records, failures := s.Scrape(ctx, links)
	rep.Scraped = len(links) - len(failures)
	rep.Retained = len(records)
	rep.Failures = append(rep.Failures, failures...)

	if err := ctx.Err(); err != nil {
		return s.finish(rep), fmt.Errorf("scrape interrupted: %w", err)
	}
	if len(failures) > 0 {
		s.log.Warn("some word pages failed", slog.Int("failed", len(failures)))
	}

	if len(records) == 0 {
		s.log.Info("no records to save", slog.Int("saved", 0))
	} else {
		if err := ioformats.WriteRecords(s.exportPath, records); err != nil {
			return s.finish(rep), fmt.Errorf("export: %w", err)
		}
		rep.Saved = len(records)
		rep.OutputPath = s.exportPath
		s.log.Info("success, saved words", slog.Int("saved", rep.Saved), slog.String("path", rep.OutputPath))
	}

	s.finish(rep)
	if s.store != nil {
		if err := s.store.SaveRun(ctx, rep, records); err != nil {
			return rep, fmt.Errorf("store: %w", err)
		}
	}
	return rep, nil
}

func (s *Scraper) newReport() *models.Report {
	return &models.Report{RunID: uuid.NewString(), StartedAt: time.Now().UTC()}
}

func (s *Scraper) finish(rep *models.Report) *models.Report {
	rep.Duration = time.Since(rep.StartedAt)
	s.metrics.RecordsSaved.Set(float64(rep.Saved))
	s.metrics.LastRun.SetToCurrentTime()
	return rep
}
