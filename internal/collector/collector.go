// Package collector gathers a Reddit user's recent posts and comments,
// preferring the OAuth API and falling back to scraping the profile page.
package collector

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/agenthands/persona/internal/config"
	"github.com/agenthands/persona/internal/core/model"
	"github.com/agenthands/persona/internal/logging"
	"github.com/agenthands/persona/internal/metrics"
)

// Source is one way of reading a user's activity.
type Source interface {
	Fetch(ctx context.Context, username string) (posts, comments []model.Item, err error)
}

type AvatarSource interface {
	Avatar(ctx context.Context, username string) (string, error)
}

type Collector struct {
	API     Source
	Scraper Source
	Avatars AvatarSource
	log     *logrus.Logger
}

// New wires the API path only when client credentials are configured.
func New(cfg config.RedditConfig, logger *logrus.Logger) *Collector {
	c := &Collector{
		Scraper: NewScraper(cfg),
		log:     logging.OrStandard(logger),
	}
	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		api := NewAPIClient(cfg)
		c.API = api
		c.Avatars = api
	}
	return c
}

// NewWithSources is used by tests and callers that bring their own sources.
// Any of them may be nil.
func NewWithSources(api, scraper Source, avatars AvatarSource, logger *logrus.Logger) *Collector {
	return &Collector{API: api, Scraper: scraper, Avatars: avatars, log: logging.OrStandard(logger)}
}

// Collect never fails. Both paths failing, or finding nothing, yields two
// empty slices.
func (c *Collector) Collect(ctx context.Context, username string) ([]model.Item, []model.Item) {
	entry := c.log.WithField("username", username)

	if c.API != nil {
		posts, comments, err := c.API.Fetch(ctx, username)
		if err == nil {
			metrics.CollectTotal.WithLabelValues("api").Inc()
			return posts, comments
		}
		entry.WithError(err).Warn("reddit api failed, falling back to scraping")
	}

	if c.Scraper != nil {
		posts, comments, err := c.Scraper.Fetch(ctx, username)
		if err == nil {
			metrics.CollectTotal.WithLabelValues("scrape").Inc()
			return posts, comments
		}
		entry.WithError(err).Warn("profile scraping failed")
	}

	metrics.CollectTotal.WithLabelValues("none").Inc()
	return nil, nil
}

// Avatar returns the user's profile icon, or "" when it cannot be fetched.
func (c *Collector) Avatar(ctx context.Context, username string) string {
	if c.Avatars == nil {
		return ""
	}
	icon, err := c.Avatars.Avatar(ctx, username)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"username": username,
			"error":    err,
		}).Warn("couldn't fetch reddit avatar")
		return ""
	}
	return icon
}
