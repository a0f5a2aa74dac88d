package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/agenthands/persona/internal/core/model"
	"github.com/agenthands/persona/internal/logging"
)

// artifactExts are every file a single export may leave behind.
var artifactExts = []string{".html", ".png", ".jpg", ".pdf"}

// Workspace holds the transient files of image and PDF exports.
type Workspace struct {
	dir      string
	exporter Exporter
	width    int
	height   int
	log      *logrus.Logger
}

// NewWorkspace uses dir, or a fresh temporary directory when dir is empty.
func NewWorkspace(dir string, exporter Exporter, width, height int, logger *logrus.Logger) (*Workspace, error) {
	var err error
	if dir == "" {
		dir, err = os.MkdirTemp("", "persona-export-")
	} else {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}

	return &Workspace{
		dir:      dir,
		exporter: exporter,
		width:    width,
		height:   height,
		log:      logging.OrStandard(logger),
	}, nil
}

func (w *Workspace) Dir() string {
	return w.dir
}

// Export renders p's card and writes <id>.<format>, returning its path.
// Callers must call Cleanup(p.ID) once the file has been served, whether or
// not Export succeeded.
func (w *Workspace) Export(ctx context.Context, p model.Persona, format Format) (string, error) {
	if format != FormatJPG && format != FormatPDF {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	html, err := Card(p, w.width, w.height)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(w.path(p.ID, ".html"), html, 0o600); err != nil {
		return "", fmt.Errorf("failed to write card: %w", err)
	}

	data, err := w.exporter.Export(ctx, html, format)
	if err != nil {
		return "", err
	}

	out := w.path(p.ID, "."+string(format))
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", format, err)
	}
	return out, nil
}

// Cleanup removes every artifact for id. Missing files are ignored.
func (w *Workspace) Cleanup(id string) {
	for _, ext := range artifactExts {
		path := w.path(id, ext)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			w.log.WithFields(logrus.Fields{
				"path":  path,
				"error": err,
			}).Warn("failed to remove export artifact")
		}
	}
}

// Close removes the whole directory.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.dir)
}

func (w *Workspace) path(id, ext string) string {
	return filepath.Join(w.dir, filepath.Base(id)+ext)
}
