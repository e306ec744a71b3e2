package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"akandict-go-scraper/internal/config"
	"akandict-go-scraper/internal/crawler"
	"akandict-go-scraper/internal/metrics"
	"akandict-go-scraper/internal/models"
	"akandict-go-scraper/internal/scraper"
	"akandict-go-scraper/pkg/logger"
)

type scrapeReq struct {
	URL string `json:"url"`
}

type batchReq struct {
	URLs []string `json:"urls"`
}

type batchResp struct {
	Records  []models.WordRecord `json:"records"`
	Failures []models.FailedURL  `json:"failures,omitempty"`
}

const maxBatch = 500

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	l := logger.New(cfg.Log.Level, cfg.Log.Format)

	m := metrics.New()
	s, err := scraper.New(cfg, "", scraper.Deps{
		Fetcher: crawler.NewHTTPClient(cfg.HTTP),
		Metrics: m,
		Logger:  l,
	})
	if err != nil {
		l.Error("build scraper", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      logRequest(l, newMux(s, m)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Info("server listening", slog.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Error("server error", slog.String("error", err.Error()))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info("bye")
}

func newMux(s *scraper.Scraper, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle("GET /metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	// POST /scrape  { "url": "https://www.akandictionary.com/..." }
	mux.HandleFunc("POST /scrape", func(w http.ResponseWriter, r *http.Request) {
		var req scrapeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		rec, fail := s.ScrapePage(r.Context(), req.URL)
		if fail != nil {
			writeJSON(w, http.StatusBadGateway, fail)
			return
		}
		if !rec.HasContent() {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "page has no dictionary entry"})
			return
		}
		writeJSON(w, http.StatusOK, rec)
	})

	// POST /scrape/batch  { "urls": ["https://...", "..."] }
	mux.HandleFunc("POST /scrape/batch", func(w http.ResponseWriter, r *http.Request) {
		var req batchReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.URLs) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if len(req.URLs) > maxBatch {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "too many urls"})
			return
		}
		records, failures := s.Scrape(r.Context(), req.URLs)
		if records == nil {
			records = []models.WordRecord{}
		}
		writeJSON(w, http.StatusOK, batchResp{Records: records, Failures: failures})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequest(l *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		l.Info("request", slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.Duration("took", time.Since(start)))
	})
}
