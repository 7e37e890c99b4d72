package blog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrEmptyURL is returned before any request is made
	ErrEmptyURL = errors.New("please enter a blog URL")
	// ErrNoText is returned when the page has no paragraph text
	ErrNoText = errors.New("no paragraph text found on the page")
)

// StatusError is returned when the server answers with an error status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Config holds fetcher settings
type Config struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// DefaultConfig returns the default fetcher configuration
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		UserAgent:    "Mozilla/5.0",
		MaxBodyBytes: 10 << 20,
	}
}

// Fetcher retrieves blog posts over HTTP
type Fetcher struct {
	client *http.Client
	config Config
}

// NewFetcher creates a fetcher; zero config fields take their defaults
func NewFetcher(config Config) *Fetcher {
	defaults := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaults.MaxBodyBytes
	}

	return &Fetcher{
		client: &http.Client{Timeout: config.Timeout},
		config: config,
	}
}

// Fetch downloads url and returns the text of all <p> elements joined by a
// single space
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", ErrEmptyURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	log.Info("Fetching blog", "url", url)
	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch blog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, f.config.MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	text := strings.TrimSpace(strings.Join(Paragraphs(doc), " "))
	if text == "" {
		return "", ErrNoText
	}

	log.Debug("Blog fetched", "url", url, "chars", len(text), "took", time.Since(start))
	return text, nil
}

// Paragraphs returns the text content of every <p> element under n, in
// document order. Nested paragraphs are part of their outermost paragraph.
func Paragraphs(n *html.Node) []string {
	var paragraphs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			paragraphs = append(paragraphs, textContent(n))
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return paragraphs
}

// textContent concatenates the text nodes below n, skipping scripts and styles
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style):
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
