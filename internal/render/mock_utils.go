package render

import (
	"context"
)

type MockExporter struct {
	Data   []byte
	Err    error
	Inputs [][]byte
}

func (m *MockExporter) Export(ctx context.Context, html []byte, format Format) ([]byte, error) {
	m.Inputs = append(m.Inputs, html)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}
