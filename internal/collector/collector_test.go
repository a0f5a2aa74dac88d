package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/persona/internal/config"
	"github.com/agenthands/persona/internal/core/model"
)

func TestCollectPrefersAPI(t *testing.T) {
	api := &MockSource{Posts: []model.Item{{Title: "from api"}}}
	scraper := &MockSource{Posts: []model.Item{{Title: "from page"}}}
	c := NewWithSources(api, scraper, nil, nil)

	posts, comments := c.Collect(context.Background(), "alice")

	require.Len(t, posts, 1)
	assert.Equal(t, "from api", posts[0].Title)
	assert.Empty(t, comments)
	assert.Equal(t, 0, scraper.Calls)
}

func TestCollectFallsBackToScraper(t *testing.T) {
	logger, hook := test.NewNullLogger()
	api := &MockSource{Err: errors.New("403 suspended")}
	scraper := &MockSource{Comments: []model.Item{{Title: "scraped"}}}
	c := NewWithSources(api, scraper, nil, logger)

	posts, comments := c.Collect(context.Background(), "alice")

	assert.Empty(t, posts)
	require.Len(t, comments, 1)
	assert.Equal(t, 1, scraper.Calls)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "alice", entry.Data["username"])
}

func TestCollectBothFailReturnsEmpty(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := NewWithSources(&MockSource{Err: errors.New("api down")}, &MockSource{Err: errors.New("blocked")}, nil, logger)

	posts, comments := c.Collect(context.Background(), "alice")

	assert.Empty(t, posts)
	assert.Empty(t, comments)
	assert.Len(t, hook.AllEntries(), 2)
}

func TestCollectWithoutAPI(t *testing.T) {
	scraper := &MockSource{Posts: []model.Item{{Title: "x"}}}
	c := NewWithSources(nil, scraper, nil, nil)

	posts, _ := c.Collect(context.Background(), "alice")
	assert.Len(t, posts, 1)
}

func TestNewWiresAPIOnlyWithCredentials(t *testing.T) {
	cfg := config.Default().Reddit
	c := New(cfg, nil)
	assert.Nil(t, c.API)
	assert.Nil(t, c.Avatars)
	assert.NotNil(t, c.Scraper)

	cfg.ClientID, cfg.ClientSecret = "id", "secret"
	c = New(cfg, nil)
	assert.IsType(t, &APIClient{}, c.API)
	assert.IsType(t, &APIClient{}, c.Avatars)
}

func TestCollectorAvatar(t *testing.T) {
	c := NewWithSources(nil, nil, &MockAvatarSource{URL: "https://styles.redditmedia.com/a.png"}, nil)
	assert.Equal(t, "https://styles.redditmedia.com/a.png", c.Avatar(context.Background(), "alice"))

	logger, hook := test.NewNullLogger()
	c = NewWithSources(nil, nil, &MockAvatarSource{Err: errors.New("no icon")}, logger)
	assert.Equal(t, "", c.Avatar(context.Background(), "alice"))
	assert.Len(t, hook.AllEntries(), 1)

	c = NewWithSources(nil, nil, nil, nil)
	assert.Equal(t, "", c.Avatar(context.Background(), "alice"))
}
