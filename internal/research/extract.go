package research

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxEnrichedPages caps how many result pages are fetched for enrichment.
const maxEnrichedPages = 3

// maxPageTextLen caps the extracted text contributed by a single page.
const maxPageTextLen = 2000

// PageFetcher fetches search result pages and extracts their visible text
// to enrich the research summary beyond snippets.
type PageFetcher struct {
	client *http.Client
}

// NewPageFetcher creates a PageFetcher with a bounded request timeout.
func NewPageFetcher() *PageFetcher {
	return &PageFetcher{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// EnrichResults fetches the top result pages and returns their extracted
// text as an addendum to the search summary. Fetch failures are skipped;
// enrichment is best-effort.
func (p *PageFetcher) EnrichResults(ctx context.Context, results []searchResult) string {
	capped := results
	if len(capped) > maxEnrichedPages {
		capped = capped[:maxEnrichedPages]
	}

	var sb strings.Builder
	for _, r := range capped {
		text, err := p.fetchPageText(ctx, r.Link)
		if err != nil || text == "" {
			continue
		}
		fmt.Fprintf(&sb, "PAGE CONTENT (%s):\n%s\n\n", r.Link, text)
	}
	if sb.Len() == 0 {
		return ""
	}
	return "\n" + sb.String()
}

func (p *PageFetcher) fetchPageText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "content-scout/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}
	return ExtractText(doc), nil
}

// ExtractText pulls readable text from a parsed page, skipping script,
// style, and navigation chrome, and collapses whitespace.
func ExtractText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()

	root := doc.Find("article")
	if root.Length() == 0 {
		root = doc.Find("main")
	}
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var parts []string
	root.Find("h1, h2, h3, p, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})

	text := strings.Join(parts, "\n")
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > maxPageTextLen {
		text = text[:maxPageTextLen]
	}
	return text
}
