package collector

import (
	"context"

	"github.com/agenthands/persona/internal/core/model"
)

type MockSource struct {
	Posts    []model.Item
	Comments []model.Item
	Err      error
	Calls    int
}

func (m *MockSource) Fetch(ctx context.Context, username string) ([]model.Item, []model.Item, error) {
	m.Calls++
	if m.Err != nil {
		return nil, nil, m.Err
	}
	return m.Posts, m.Comments, nil
}

type MockAvatarSource struct {
	URL string
	Err error
}

func (m *MockAvatarSource) Avatar(ctx context.Context, username string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.URL, nil
}
