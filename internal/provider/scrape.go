package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/file"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
)

// linkPattern marks a site's media page links.
type linkPattern struct {
	name    string
	pattern string
}

var patterns = map[string]linkPattern{
	"youtube.com":  {name: "YouTube", pattern: "/watch?v="},
	"youtu.be":     {name: "YouTube short link", pattern: "youtu.be/"},
	"bitchute.com": {name: "BitChute", pattern: "/video/"},
	"odysee.com":   {name: "Odysee", pattern: "/@"},
	"rumble.com":   {name: "Rumble", pattern: "/v"},
	"vimeo.com":    {name: "Vimeo", pattern: "vimeo.com/"},
}

// LinkScraper collects media links from a web page.
type LinkScraper struct {
	transport http.RoundTripper
}

// NewLinkScraper returns a scraper using rt for requests (nil uses the default transport).
func NewLinkScraper(rt http.RoundTripper) *LinkScraper {
	return &LinkScraper{transport: rt}
}

// Links visits pageURL and returns media links in document order, without duplicates.
func (s *LinkScraper) Links(ctx context.Context, pageURL string) ([]string, error) {
	if _, err := ValidateURL(pageURL); err != nil {
		return nil, err
	}

	match := matcherFor(pageURL)
	c := colly.NewCollector(colly.AllowURLRevisit())
	c.SetRequestTimeout(consts.ScraperTimeout)
	if s.transport != nil {
		c.WithTransport(s.transport)
	}

	var (
		links   []string
		seen    = make(map[string]struct{})
		scrapeE error
	)

	c.OnHTML("html", func(e *colly.HTMLElement) {
		e.DOM.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok {
				return
			}
			link := e.Request.AbsoluteURL(strings.TrimSpace(href))
			if link == "" || !match(link) {
				return
			}
			if _, dup := seen[link]; dup {
				return
			}
			seen[link] = struct{}{}
			links = append(links, link)
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		scrapeE = fmt.Errorf("scraping %q (status %d): %w", pageURL, r.StatusCode, err)
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("error visiting webpage %q: %w", pageURL, err)
	}
	c.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scrapeE != nil {
		return nil, scrapeE
	}

	logger.Pl.D(1, "Scraped %d media links from %q", len(links), pageURL)
	return links, nil
}

// matcherFor returns the link filter for pages on pageURL's site.
//
// Known sites match their media page pattern, anything else matches direct media files.
func matcherFor(pageURL string) func(string) bool {
	for domain, p := range patterns {
		if strings.Contains(pageURL, domain) {
			logger.Pl.D(1, "Detected %s link", p.name)
			pattern := p.pattern
			return func(link string) bool {
				return strings.Contains(link, pattern)
			}
		}
	}

	return func(link string) bool {
		u, err := url.Parse(link)
		if err != nil {
			return false
		}
		return file.HasVideoExtension(path.Base(u.Path))
	}
}
