package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"ariadne/internal/util"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// Candidate is one search hit before it has been fetched or scored.
type Candidate struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
}

// Searcher finds candidate sources for a search term.
type Searcher interface {
	Search(ctx context.Context, term string) ([]Candidate, error)
}

// Fetcher retrieves the readable text of a source URL. An empty result with a
// nil error never occurs; missing text is an error the caller drops on.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Library is the fetch collaborator: search plus content retrieval.
type Library interface {
	Searcher
	Fetcher
}

// HTTPLibrary scrapes a PhilPapers-style search page and extracts text from
// HTML or PDF sources.
type HTTPLibrary struct {
	client    *http.Client
	searchURL string
	maxBytes  int64
}

func NewHTTPLibrary(searchURL string, client *http.Client) *HTTPLibrary {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPLibrary{client: client, searchURL: searchURL, maxBytes: 16 << 20}
}

func (l *HTTPLibrary) Search(ctx context.Context, term string) ([]Candidate, error) {
	doc, err := l.fetchDocument(ctx, l.searchURL+"?searchStr="+url.QueryEscape(strings.TrimSpace(term)))
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	results := make([]Candidate, 0)
	seen := map[string]struct{}{}
	doc.Find(".entry, li.entry, article").Each(func(_ int, sel *goquery.Selection) {
		link := sel.Find("a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}
		author := strings.TrimSpace(sel.Find(".name, .author").First().Text())
		results = append(results, Candidate{Title: title, Author: author, URL: href})
	})
	return results, nil
}

func (l *HTTPLibrary) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ariadne/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %s", rawURL, resp.Status)
	}

	body := io.LimitReader(resp.Body, l.maxBytes)
	if isPDF(rawURL, resp.Header.Get("Content-Type")) {
		return extractPDF(body)
	}
	return extractHTML(body)
}

func (l *HTTPLibrary) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ariadne/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search backend returned %s", resp.Status)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func extractHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, nav, footer, header").Remove()

	parts := make([]string, 0)
	doc.Find("h1, h2, h3, p, blockquote, li").Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	text := util.SanitizeText(strings.Join(parts, "\n"))
	if text == "" {
		// Fall back to the whole body for pages without semantic markup.
		text = util.SanitizeText(doc.Find("body").Text())
	}
	if text == "" {
		return "", util.ErrNoExtractableText
	}
	return text, nil
}

// extractPDF spools the body to a temp file because the reader needs random access.
func extractPDF(r io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "ariadne-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp pdf: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("spool pdf: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp pdf: %w", err)
	}

	f, reader, err := pdf.Open(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, plain); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}
	text := util.SanitizeText(buf.String())
	if text == "" {
		return "", util.ErrNoExtractableText
	}
	return text, nil
}

func isPDF(rawURL, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(strings.SplitN(rawURL, "?", 2)[0]), ".pdf")
}
