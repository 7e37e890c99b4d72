package translation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const googleBaseURL = "https://translate.googleapis.com"

// GoogleTranslator uses the keyless Google Translate web endpoint
type GoogleTranslator struct {
	baseURL     string
	client      *http.Client
	rateLimiter *rate.Limiter
}

// NewGoogleTranslator creates a Google Translate provider
func NewGoogleTranslator(config *Config) *GoogleTranslator {
	baseURL := config.GoogleBaseURL
	if baseURL == "" {
		baseURL = googleBaseURL
	}

	perMinute := config.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}

	return &GoogleTranslator{
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      &http.Client{Timeout: 30 * time.Second},
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 3),
	}
}

// Name returns the provider name
func (g *GoogleTranslator) Name() string {
	return "google"
}

// Translate sends text as a form POST and joins the translated segments
func (g *GoogleTranslator) Translate(ctx context.Context, text, targetCode string) (string, error) {
	text, err := checkText(text)
	if err != nil {
		return "", err
	}

	if err := g.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", "auto")
	query.Set("tl", targetCode)
	query.Set("dt", "t")
	endpoint := g.baseURL + "/translate_a/single?" + query.Encode()

	form := url.Values{"q": {text}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read translation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation service returned HTTP %d", resp.StatusCode)
	}

	translated, err := parseGoogleResponse(body)
	if err != nil {
		return "", err
	}

	log.Debug("Google translation done", "target", targetCode, "chars", len(translated))
	return translated, nil
}

// parseGoogleResponse extracts the translated segments from
// [[["Bonjour","Hello",...],["le monde","world",...]],null,"en",...]
func parseGoogleResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("invalid translation response")
	}

	var sb strings.Builder
	for _, segment := range gjson.GetBytes(body, "0.#.0").Array() {
		sb.WriteString(segment.String())
	}

	translated := strings.TrimSpace(sb.String())
	if translated == "" {
		return "", fmt.Errorf("translation service returned no text")
	}
	return translated, nil
}
