package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/persona/internal/collector"
	"github.com/agenthands/persona/internal/config"
	"github.com/agenthands/persona/internal/core"
	"github.com/agenthands/persona/internal/core/inference"
	"github.com/agenthands/persona/internal/core/model"
)

func testGenerator(src *collector.MockSource) *core.Generator {
	logger, _ := test.NewNullLogger()
	engine := inference.NewEngine(nil, config.PersonaPrompts{}, 0, logger)
	return core.NewGenerator(collector.NewWithSources(nil, src, nil, logger), engine, nil, logger)
}

func TestWriteReport(t *testing.T) {
	noColor = true
	src := &collector.MockSource{
		Posts: []model.Item{{Title: "I love my wife and kids", Subreddit: "parenting", Upvotes: 50, Kind: model.KindPost}},
	}
	out := filepath.Join(t.TempDir(), "alice.txt")
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)

	require.NoError(t, writeReport(context.Background(), testGenerator(src), "alice", out, now))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	report := string(data)
	assert.True(t, strings.HasPrefix(report, "Reddit User Persona Report\nGenerated: 2024-03-01 09:30:00\nSource: https://www.reddit.com/user/alice/\n\n"))
	assert.Contains(t, report, "# alice\n")
	assert.Contains(t, report, `"[r/parenting] I love my wife and kids"`)
}

func TestWriteReportNoData(t *testing.T) {
	noColor = true
	out := filepath.Join(t.TempDir(), "ghost.txt")

	err := writeReport(context.Background(), testGenerator(&collector.MockSource{}), "ghost", out, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data found")
	assert.NoFileExists(t, out)
}

func TestGenerateCmdRequiresUsername(t *testing.T) {
	defer rootCmd.SetArgs(nil)
	rootCmd.SetArgs([]string{"generate"})
	assert.Error(t, rootCmd.Execute())
}

func TestGenerateCmdDefaultOutput(t *testing.T) {
	assert.Equal(t, defaultOutput, generateCmd.Flags().Lookup("output").DefValue)
}

func TestColorize(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	assert.Equal(t, "plain", colorize(colorGreen, "plain"))
	noColor = false
	assert.Contains(t, colorize(colorGreen, "plain"), "\033[")
}
