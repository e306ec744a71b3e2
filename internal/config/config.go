package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultFileName is the export name used when no explicit path is configured.
const DefaultFileName = "eng_akan_dict_final.csv"

// Config is the root application configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	HTTP    HTTPConfig    `yaml:"http"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
	Export  ExportConfig  `yaml:"export"`
	Store   StoreConfig   `yaml:"store"`
	Metrics MetricsConfig `yaml:"metrics"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// SiteConfig describes where word pages are discovered and how they are laid out.
type SiteConfig struct {
	Sitemaps          []string `yaml:"sitemaps"           env:"SITE_SITEMAPS"           env-default:"https://www.akandictionary.com/post-sitemap1.xml,https://www.akandictionary.com/post-sitemap2.xml,https://www.akandictionary.com/post-sitemap3.xml"`
	Domain            string   `yaml:"domain"             env:"SITE_DOMAIN"             env-default:"akandictionary.com"`
	MinLinkLength     int      `yaml:"min_link_length"    env:"SITE_MIN_LINK_LENGTH"    env-default:"35"`
	TitleSelector     string   `yaml:"title_selector"     env:"SITE_TITLE_SELECTOR"     env-default:"h1.wp-block-post-title"`
	ContentSelector   string   `yaml:"content_selector"   env:"SITE_CONTENT_SELECTOR"   env-default:"div.entry-content"`
	ParagraphSelector string   `yaml:"paragraph_selector" env:"SITE_PARAGRAPH_SELECTOR" env-default:"p"`
}

// HTTPConfig holds settings for the shared fetch client.
type HTTPConfig struct {
	Timeout      time.Duration     `yaml:"timeout"        env:"HTTP_TIMEOUT"        env-default:"15s"`
	DialTimeout  time.Duration     `yaml:"dial_timeout"   env:"HTTP_DIAL_TIMEOUT"   env-default:"5s"`
	MaxBodyBytes int64             `yaml:"max_body_bytes" env:"HTTP_MAX_BODY_BYTES" env-default:"5242880"`
	UserAgent    string            `yaml:"user_agent"     env:"HTTP_USER_AGENT"     env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0.0.0"`
	Headers      map[string]string `yaml:"headers"        env:"HTTP_HEADERS"`
}

// ScrapeConfig controls the page stage.
type ScrapeConfig struct {
	Workers int `yaml:"workers" env:"SCRAPE_WORKERS" env-default:"10"`
}

// ExportConfig controls where the final table is written.
// An empty Path resolves to DefaultFileName on the user's desktop.
type ExportConfig struct {
	Path string `yaml:"path" env:"EXPORT_PATH"`
}

// StoreConfig enables the optional SQLite mirror when Path is set.
type StoreConfig struct {
	Path string `yaml:"path" env:"STORE_PATH"`
}

// MetricsConfig enables a Prometheus textfile dump at the end of a run when Path is set.
type MetricsConfig struct {
	Path string `yaml:"path" env:"METRICS_PATH"`
}

// ServerConfig holds lookup server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"SERVER_ADDR"             env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// ResolveExportPath returns the configured export path, or
// <home>/Desktop/eng_akan_dict_final.csv when none is set.
func (c ExportConfig) ResolveExportPath() (string, error) {
	if c.Path != "" {
		return c.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "Desktop", DefaultFileName), nil
}
