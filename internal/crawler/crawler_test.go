
package crawler

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"akandict-go-scraper/internal/config"
)

func testConfig() config.HTTPConfig {
	return config.HTTPConfig{
		Timeout:      5 * time.Second,
		DialTimeout:  2 * time.Second,
		MaxBodyBytes: 1024,
		UserAgent:    "akandict-test/1.0",
		Headers:      map[string]string{"Accept-Language": "en"},
	}
}

func TestFetchHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "akandict-test/1.0" {
			t.Errorf("user agent not sent, got %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("Accept-Language") != "en" {
			t.Errorf("extra header not sent")
		}
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("<html><title>x</title></html>"))
	}))
	defer ts.Close()

	client := NewHTTPClient(testConfig())
	resp, err := client.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetch err: %v", err)
	}
	if resp.FinalURL == "" || resp.ContentType == "" || resp.Elapsed == 0 {
		t.Fatal("unexpected empty values")
	}
	if string(resp.Body) != "<html><title>x</title></html>" {
		t.Fatalf("unexpected body %q", resp.Body)
	}
}

func TestFetchXMLAllowed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte("<urlset></urlset>"))
	}))
	defer ts.Close()

	if _, err := NewHTTPClient(testConfig()).Fetch(context.Background(), ts.URL); err != nil {
		t.Fatalf("xml should be accepted: %v", err)
	}
}

func TestFetchGzip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte("<p>compressed</p>"))
		_ = gz.Close()
	}))
	defer ts.Close()

	resp, err := NewHTTPClient(testConfig()).Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetch err: %v", err)
	}
	if string(resp.Body) != "<p>compressed</p>" {
		t.Fatalf("unexpected body %q", resp.Body)
	}
}

func TestFetchSizeCap(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 4096))
	}))
	defer ts.Close()

	resp, err := NewHTTPClient(testConfig()).Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetch err: %v", err)
	}
	if len(resp.Body) != 1024 {
		t.Fatalf("want body capped at 1024, got %d", len(resp.Body))
	}
}

func TestRejectNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := NewHTTPClient(testConfig()).Fetch(context.Background(), ts.URL)
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
}

func TestRejectInvalidURL(t *testing.T) {
	_, err := NewHTTPClient(testConfig()).Fetch(context.Background(), "not a url")
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond
	if _, err := NewHTTPClient(cfg).Fetch(context.Background(), ts.URL); err == nil {
		t.Fatal("expected timeout error")
	}
}
