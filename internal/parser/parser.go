
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html/charset"

	"akandict-go-scraper/internal/classifier"
	"akandict-go-scraper/internal/config"
	"akandict-go-scraper/internal/models"
)

var (
	ErrEmptyDocument = errors.New("empty document")
	ErrMalformed     = errors.New("malformed document")
)

// Parser pulls a WordRecord out of a dictionary word page.
type Parser struct {
	title     cascadia.Selector
	content   cascadia.Selector
	paragraph cascadia.Selector
}

// New compiles the page selectors once so workers can share the Parser.
func New(site config.SiteConfig) (*Parser, error) {
	title, err := cascadia.Compile(site.TitleSelector)
	if err != nil {
		return nil, fmt.Errorf("title selector %q: %w", site.TitleSelector, err)
	}
	content, err := cascadia.Compile(site.ContentSelector)
	if err != nil {
		return nil, fmt.Errorf("content selector %q: %w", site.ContentSelector, err)
	}
	paragraph, err := cascadia.Compile(site.ParagraphSelector)
	if err != nil {
		return nil, fmt.Errorf("paragraph selector %q: %w", site.ParagraphSelector, err)
	}
	return &Parser{title: title, content: content, paragraph: paragraph}, nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Parse returns a record for pageURL. A page with a title but no content
// block still yields a record; filtering empty records is the assembler's job.
func (p *Parser) Parse(body []byte, contentType, pageURL string) (rec *models.WordRecord, err error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyDocument
	}
	defer func() {
		if r := recover(); r != nil {
			rec, err = nil, fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	doc, err := p.document(body, contentType)
	if err != nil {
		return nil, err
	}

	out := &models.WordRecord{URL: pageURL}
	if title := doc.FindMatcher(p.title).First(); title.Length() > 0 {
		out.TwiWord = normalize(title.Text())
	}

	content := doc.FindMatcher(p.content).First()
	if content.Length() == 0 {
		return out, nil
	}

	var blocks []string
	content.FindMatcher(p.paragraph).Each(func(i int, s *goquery.Selection) {
		blocks = append(blocks, normalize(s.Text()))
	})
	fields := classifier.ExtractFields(blocks)
	out.EnglishWord = fields.EnglishWord
	out.PartOfSpeech = fields.PartOfSpeech

	return out, nil
}

func (p *Parser) document(data []byte, contentType string) (*goquery.Document, error) {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	doc.Find("script,noscript,style").Remove()
	return doc, nil
}

func normalize(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
