package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the values Load cannot express through tags alone.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Site.Sitemaps) == 0 {
		errs = append(errs, errors.New("site.sitemaps: at least one sitemap is required"))
	}
	for _, s := range c.Site.Sitemaps {
		u, err := url.Parse(strings.TrimSpace(s))
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("site.sitemaps: invalid url %q", s))
		}
	}
	if strings.TrimSpace(c.Site.Domain) == "" {
		errs = append(errs, errors.New("site.domain: must not be empty"))
	}
	if c.Site.MinLinkLength < 0 {
		errs = append(errs, errors.New("site.min_link_length: must not be negative"))
	}
	if c.Site.TitleSelector == "" || c.Site.ContentSelector == "" || c.Site.ParagraphSelector == "" {
		errs = append(errs, errors.New("site: selectors must not be empty"))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("http.timeout: must be positive"))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("http.max_body_bytes: must be positive"))
	}
	if c.Scrape.Workers <= 0 {
		errs = append(errs, errors.New("scrape.workers: must be positive"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
