package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/persona/internal/config"
	"github.com/agenthands/persona/internal/core/model"
)

const profilePage = `<html><body>
<div class="Post scrollerItem">
  <a class="_3ryJoIoycVkA88fy40qNJc" href="/r/golang/">r/golang</a>
  <a class="_3jOxDPIQ0KaOWpzvSQo-1s" href="/r/golang/comments/1/generics/">5 hours ago</a>
  <h3 class="_eYtD2XCVieq6emjKBH3m">Generics are great</h3>
  <div class="_292iotee39Lmt0MkQZ2hPV"><p>I think they help a lot.</p></div>
</div>
<div class="Post">
  <a class="_3ryJoIoycVkA88fy40qNJc">r/funny</a>
  <h3 class="_eYtD2XCVieq6emjKBH3m">lol that's hilarious</h3>
</div>
<div class="Post">
  <div class="_292iotee39Lmt0MkQZ2hPV">untitled items are skipped</div>
</div>
</body></html>`

func TestParseProfile(t *testing.T) {
	posts, comments, err := ParseProfile(strings.NewReader(profilePage))
	require.NoError(t, err)

	require.Len(t, posts, 1)
	assert.Equal(t, model.Item{
		Title:     "Generics are great",
		Text:      "I think they help a lot.",
		Subreddit: "golang",
		URL:       "https://reddit.com/r/golang/comments/1/generics/",
		Kind:      model.KindPost,
	}, posts[0])

	require.Len(t, comments, 1)
	assert.Equal(t, "lol that's hilarious", comments[0].Title)
	assert.Equal(t, "funny", comments[0].Subreddit)
	assert.Equal(t, "", comments[0].URL)
	assert.Equal(t, model.KindComment, comments[0].Kind)
}

func TestParseProfileEmpty(t *testing.T) {
	posts, comments, err := ParseProfile(strings.NewReader("<html><body>nothing</body></html>"))
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Empty(t, comments)
}

func TestScraperFetch(t *testing.T) {
	var gotAgent, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(profilePage))
	}))
	defer srv.Close()

	cfg := config.Default().Reddit
	cfg.WebBaseURL = srv.URL

	posts, comments, err := NewScraper(cfg).Fetch(context.Background(), "alice")
	require.NoError(t, err)

	assert.Len(t, posts, 1)
	assert.Len(t, comments, 1)
	assert.Equal(t, "/user/alice/", gotPath)
	assert.Equal(t, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36", gotAgent)
}

func TestScraperFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := config.Default().Reddit
	cfg.WebBaseURL = srv.URL

	_, _, err := NewScraper(cfg).Fetch(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestProfileURL(t *testing.T) {
	assert.Equal(t, "https://www.reddit.com/user/alice/", ProfileURL("alice"))
}
