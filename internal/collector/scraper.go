package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/agenthands/persona/internal/config"
	"github.com/agenthands/persona/internal/core/model"
)

// Scraper reads the public profile page without credentials.
type Scraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

func NewScraper(cfg config.RedditConfig) *Scraper {
	baseURL := cfg.WebBaseURL
	if baseURL == "" {
		baseURL = "https://www.reddit.com"
	}
	return &Scraper{
		client:    &http.Client{Timeout: config.Duration(cfg.Timeout, 10*time.Second)},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: cfg.ScrapeUserAgent,
	}
}

// ProfileURL is the public profile page for username.
func ProfileURL(username string) string {
	return fmt.Sprintf("https://www.reddit.com/user/%s/", username)
}

func (s *Scraper) Fetch(ctx context.Context, username string) ([]model.Item, []model.Item, error) {
	pageURL := fmt.Sprintf("%s/user/%s/", s.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build profile request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch profile page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("profile page returned status %d", resp.StatusCode)
	}

	return ParseProfile(resp.Body)
}

// ParseProfile extracts titled items from profile markup. An item with a body
// element is a post; one without is a comment.
func ParseProfile(r io.Reader) ([]model.Item, []model.Item, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse profile page: %w", err)
	}

	var posts, comments []model.Item
	doc.Find(PostContainer).Each(func(_ int, s *goquery.Selection) {
		title := s.Find(PostTitle).First()
		if title.Length() == 0 {
			return
		}

		item := model.Item{
			Title:     strings.TrimSpace(title.Text()),
			Subreddit: strings.TrimPrefix(strings.TrimSpace(s.Find(PostSubreddit).First().Text()), "r/"),
		}
		if href, ok := s.Find(PostTimestamp).First().Attr("href"); ok && href != "" {
			item.URL = permalinkURL(href)
		}

		body := s.Find(PostBody).First()
		if body.Length() > 0 {
			item.Text = strings.TrimSpace(body.Text())
			item.Kind = model.KindPost
			posts = append(posts, item)
			return
		}
		item.Kind = model.KindComment
		comments = append(comments, item)
	})

	return posts, comments, nil
}

func permalinkURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return "https://reddit.com" + href
}
