// Package core wires collection, inference and persistence into a single
// generate operation.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/persona/internal/core/inference"
	"github.com/agenthands/persona/internal/core/model"
	"github.com/agenthands/persona/internal/logging"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrNoData        = errors.New("no data found for this user")
)

type Collector interface {
	Collect(ctx context.Context, username string) (posts, comments []model.Item)
	// Avatar returns "" when no profile image is available.
	Avatar(ctx context.Context, username string) string
}

type Store interface {
	Save(p model.Persona) error
}

type Generator struct {
	Collector     Collector
	Engine        *inference.Engine
	Store         Store
	UUIDGenerator func() string
	log           *logrus.Logger
}

// NewGenerator builds a Generator. store may be nil for one-off runs that do
// not need to be downloaded later.
func NewGenerator(collector Collector, engine *inference.Engine, store Store, logger *logrus.Logger) *Generator {
	return &Generator{
		Collector:     collector,
		Engine:        engine,
		Store:         store,
		UUIDGenerator: uuid.NewString,
		log:           logging.OrStandard(logger),
	}
}

// Generate collects the user's activity, infers a persona and persists it
// under a new id. ErrEmptyUsername and ErrNoData are the only expected errors.
func (g *Generator) Generate(ctx context.Context, username string) (model.Persona, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.Persona{}, ErrEmptyUsername
	}

	posts, comments := g.Collector.Collect(ctx, username)
	if len(posts) == 0 && len(comments) == 0 {
		return model.Persona{}, ErrNoData
	}

	p := g.Engine.Infer(ctx, inference.Request{
		Username: username,
		Posts:    posts,
		Comments: comments,
		Photo:    g.Collector.Avatar(ctx, username),
	})
	p.ID = g.UUIDGenerator()

	if g.Store != nil {
		if err := g.Store.Save(p); err != nil {
			return model.Persona{}, fmt.Errorf("failed to save persona: %w", err)
		}
	}

	g.log.WithFields(logrus.Fields{
		"username": username,
		"id":       p.ID,
		"posts":    len(posts),
		"comments": len(comments),
	}).Info("persona generated")

	return p, nil
}
