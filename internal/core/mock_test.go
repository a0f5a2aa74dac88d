package core

import (
	"context"

	"github.com/agenthands/persona/internal/core/model"
)

type MockCollector struct {
	Posts    []model.Item
	Comments []model.Item
	Photo    string
	Calls    int
}

func (m *MockCollector) Collect(ctx context.Context, username string) ([]model.Item, []model.Item) {
	m.Calls++
	return m.Posts, m.Comments
}

func (m *MockCollector) Avatar(ctx context.Context, username string) string {
	return m.Photo
}

type MockStore struct {
	Saved []model.Persona
	Err   error
}

func (m *MockStore) Save(p model.Persona) error {
	if m.Err != nil {
		return m.Err
	}
	m.Saved = append(m.Saved, p)
	return nil
}

type MockLLM struct {
	Response string
	Err      error
	Calls    int
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
