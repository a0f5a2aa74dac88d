package render

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/persona/internal/config"
	"github.com/agenthands/persona/internal/core/model"
)

func samplePersona() model.Persona {
	return model.Persona{
		ID:              "abc-123",
		Username:        "alice",
		Name:            "Alice",
		Age:             "30-45 (married)",
		Occupation:      "Tech",
		Status:          "Married",
		Location:        "UK",
		Tube:            "Mainstream",
		Archetype:       "The Helper",
		PrimaryTraits:   "Analytical, Logical",
		SecondaryTraits: "Positive, Helpful",
		Motivations:     []string{"Learning", "Helping"},
		Behavior:        []string{"Active in 2 subreddits", "Has made 1 posts and 1 comments"},
		Goals:           []string{"Career growth"},
		Frustrations:    []string{"Technology"},
		Quote:           "[r/golang] <generics> & more",
		Photo:           "data:image/svg+xml;base64,PHN2Zy8+",
	}
}

func TestTextLayout(t *testing.T) {
	out, err := Text(samplePersona())
	require.NoError(t, err)

	want := `
# Alice

**AGE** 30-45 (married) | **OCCUPATION** Tech | **STATUS** Married | **LOCATION** UK | **TUBE** Mainstream | **ARCHETYPE** The Helper

---

## Analytical, Logical

### Positive, Helpful

---

## MOTIVATIONS

- Learning
- Helping

---

## BEHAVIOR & HABITS

- Active in 2 subreddits
- Has made 1 posts and 1 comments

---

## GOALS & NEEDS

- Career growth

---

## FRUSTRATIONS

- Technology

---

"[r/golang] <generics> & more"
`
	assert.Equal(t, want, out)
}

func TestTextDefaults(t *testing.T) {
	out, err := Text(model.Persona{Username: "ghost"})
	require.NoError(t, err)

	assert.Contains(t, out, "# ghost\n")
	assert.Contains(t, out, "**AGE** Unknown |")
	assert.Contains(t, out, "## MOTIVATIONS\n\n- No data available\n")
	assert.Contains(t, out, `"No representative quote available"`)
}

func TestReport(t *testing.T) {
	generated := time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local)
	out, err := Report(samplePersona(), "https://www.reddit.com/user/alice/", generated)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out,
		"Reddit User Persona Report\nGenerated: 2024-03-01 09:05:07\nSource: https://www.reddit.com/user/alice/\n\n\n# Alice\n"))
}

func TestCardContainsEveryField(t *testing.T) {
	p := samplePersona()
	html, err := Card(p, 1600, 800)
	require.NoError(t, err)
	page := string(html)

	for _, s := range []string{p.Name, p.Age, p.Occupation, p.Status, p.Location, p.Tube, p.Archetype, p.PrimaryTraits, p.SecondaryTraits} {
		assert.Contains(t, page, s)
	}
	for _, list := range [][]string{p.Motivations, p.Behavior, p.Goals, p.Frustrations} {
		for _, it := range list {
			assert.Contains(t, page, "<li>"+it+"</li>")
		}
	}
	assert.Contains(t, page, "[r/golang] &lt;generics&gt; &amp; more")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	require.NoError(t, err)
	src, ok := doc.Find("img").Attr("src")
	require.True(t, ok)
	assert.Equal(t, p.Photo, src)
	assert.Contains(t, page, "width: 1600px")
}

func TestCardDropsUnsafePhoto(t *testing.T) {
	p := samplePersona()
	p.Photo = "javascript:alert(1)"

	html, err := Card(p, 1600, 800)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<img")
	assert.NotContains(t, string(html), "javascript")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "JPG": FormatJPG, "pdf": FormatPDF} {
		f, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, f)
	}

	_, err := ParseFormat("png")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.Equal(t, "image/jpeg", FormatJPG.ContentType())
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
}

func TestWorkspaceExportAndCleanup(t *testing.T) {
	exporter := &MockExporter{Data: []byte("jpeg bytes")}
	ws, err := NewWorkspace(t.TempDir(), exporter, 1600, 800, nil)
	require.NoError(t, err)

	p := samplePersona()
	path, err := ws.Export(context.Background(), p, FormatJPG)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(ws.Dir(), "abc-123.jpg"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))
	assert.FileExists(t, filepath.Join(ws.Dir(), "abc-123.html"))
	require.Len(t, exporter.Inputs, 1)
	assert.Contains(t, string(exporter.Inputs[0]), "Alice")

	ws.Cleanup(p.ID)
	entries, err := os.ReadDir(ws.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWorkspaceExportFailureLeavesCleanableFiles(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir(), &MockExporter{Err: errors.New("chrome not found")}, 1600, 800, nil)
	require.NoError(t, err)

	_, err = ws.Export(context.Background(), samplePersona(), FormatPDF)
	require.Error(t, err)

	ws.Cleanup("abc-123")
	entries, err := os.ReadDir(ws.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWorkspaceRejectsJSON(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir(), &MockExporter{}, 1600, 800, nil)
	require.NoError(t, err)

	_, err = ws.Export(context.Background(), samplePersona(), FormatJSON)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWorkspaceTempDirAndClose(t *testing.T) {
	ws, err := NewWorkspace("", &MockExporter{}, 1600, 800, nil)
	require.NoError(t, err)
	assert.DirExists(t, ws.Dir())

	require.NoError(t, ws.Close())
	assert.NoDirExists(t, ws.Dir())
}

func TestNewChromeExporterDefaults(t *testing.T) {
	e := NewChromeExporter(config.ExportConfig{})
	assert.Equal(t, 1600, e.Width)
	assert.Equal(t, 800, e.Height)
	assert.Equal(t, 90, e.Quality)
	assert.Equal(t, 30*time.Second, e.Timeout)

	_, err := e.Export(context.Background(), nil, FormatJSON)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
