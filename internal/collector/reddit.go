package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/agenthands/persona/internal/config"
	"github.com/agenthands/persona/internal/core/model"
)

// pageSize is the largest listing page Reddit serves.
const pageSize = 100

// APIClient reads a user's listings through the OAuth API using app-only
// (client credentials) auth.
type APIClient struct {
	client  *http.Client
	baseURL string
	limit   int
	limiter *rate.Limiter
}

func NewAPIClient(cfg config.RedditConfig) *APIClient {
	timeout := config.Duration(cfg.Timeout, 10*time.Second)

	// Reddit rejects requests without a descriptive User-Agent, token requests included.
	base := &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{agent: cfg.UserAgent, next: http.DefaultTransport},
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	client := cc.Client(context.WithValue(context.Background(), oauth2.HTTPClient, base))
	client.Timeout = timeout

	limit := cfg.Limit
	if limit <= 0 {
		limit = pageSize
	}

	every := rate.Inf
	if d := config.Duration(cfg.ItemDelay, 500*time.Millisecond); d > 0 {
		every = rate.Every(d)
	}

	return &APIClient{
		client:  client,
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		limit:   limit,
		limiter: rate.NewLimiter(every, 1),
	}
}

// Fetch returns the newest submissions and comments, waiting the item delay
// before each one. Any error aborts the whole fetch.
func (c *APIClient) Fetch(ctx context.Context, username string) ([]model.Item, []model.Item, error) {
	submitted, err := c.listing(ctx, username, "submitted")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	posts := make([]model.Item, 0, len(submitted))
	for _, t := range submitted {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
		posts = append(posts, t.post())
	}

	commented, err := c.listing(ctx, username, "comments")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list comments: %w", err)
	}
	comments := make([]model.Item, 0, len(commented))
	for _, t := range commented {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
		comments = append(comments, t.comment())
	}

	return posts, comments, nil
}

// Avatar returns the profile icon URL with its query string removed.
func (c *APIClient) Avatar(ctx context.Context, username string) (string, error) {
	var about struct {
		Data struct {
			IconImg string `json:"icon_img"`
		} `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/user/%s/about", url.PathEscape(username)), nil, &about); err != nil {
		return "", err
	}

	icon, _, _ := strings.Cut(about.Data.IconImg, "?")
	if icon == "" {
		return "", errors.New("user has no icon")
	}
	return icon, nil
}

// listing pages through /user/<name>/<kind> until limit things or the end.
func (c *APIClient) listing(ctx context.Context, username, kind string) ([]thing, error) {
	path := fmt.Sprintf("/user/%s/%s", url.PathEscape(username), kind)

	var out []thing
	after := ""
	for len(out) < c.limit {
		q := url.Values{}
		q.Set("sort", "new")
		q.Set("raw_json", "1")
		q.Set("limit", strconv.Itoa(min(pageSize, c.limit-len(out))))
		if after != "" {
			q.Set("after", after)
		}

		var page listing
		if err := c.get(ctx, path, q, &page); err != nil {
			return nil, err
		}
		for _, child := range page.Data.Children {
			out = append(out, child.Data)
		}

		after = page.Data.After
		if after == "" || len(page.Data.Children) == 0 {
			break
		}
	}

	if len(out) > c.limit {
		out = out[:c.limit]
	}
	return out, nil
}

func (c *APIClient) get(ctx context.Context, path string, q url.Values, v any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

type listing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string `json:"kind"`
			Data thing  `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// thing holds the fields shared by submissions (t3) and comments (t1).
type thing struct {
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Body       string  `json:"body"`
	Subreddit  string  `json:"subreddit"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	URL        string  `json:"url"`
	Permalink  string  `json:"permalink"`
}

func (t thing) post() model.Item {
	link := t.URL
	if link == "" && t.Permalink != "" {
		link = permalinkURL(t.Permalink)
	}
	return model.Item{
		Title:     t.Title,
		Text:      t.Selftext,
		Subreddit: t.Subreddit,
		Upvotes:   t.Score,
		CreatedAt: t.created(),
		URL:       link,
		Kind:      model.KindPost,
	}
}

func (t thing) comment() model.Item {
	item := model.Item{
		Text:      t.Body,
		Subreddit: t.Subreddit,
		Upvotes:   t.Score,
		CreatedAt: t.created(),
		Kind:      model.KindComment,
	}
	if t.Permalink != "" {
		item.URL = permalinkURL(t.Permalink)
	}
	return item
}

func (t thing) created() time.Time {
	if t.CreatedUTC <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(t.CreatedUTC), 0).UTC()
}

type userAgentTransport struct {
	agent string
	next  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.agent == "" {
		return t.next.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	return t.next.RoundTrip(req)
}
