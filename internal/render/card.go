package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/agenthands/persona/internal/core/model"
)

//go:embed templates/card.html
var cardLayout string

var cardTemplate = template.Must(template.New("card").Funcs(template.FuncMap{
	"photo": photoURL,
}).Parse(cardLayout))

// Card renders the fixed-size HTML card used for image and PDF export.
func Card(p model.Persona, width, height int) ([]byte, error) {
	data := struct {
		model.Persona
		Width  int
		Height int
	}{p.WithDefaults(), width, height}

	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render persona card: %w", err)
	}
	return buf.Bytes(), nil
}

// photoURL passes through http(s) links and inline images; anything else is
// dropped so the card never loads an unexpected scheme.
func photoURL(s string) template.URL {
	switch {
	case strings.HasPrefix(s, "data:image/"),
		strings.HasPrefix(s, "https://"),
		strings.HasPrefix(s, "http://"):
		return template.URL(s)
	}
	return ""
}
