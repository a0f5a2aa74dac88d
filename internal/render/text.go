// Package render formats persona records as the text report, the HTML card
// and the exported image and PDF.
package render

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/agenthands/persona/internal/core/model"
)

const textLayout = `
# {{.Name}}

**AGE** {{.Age}} | **OCCUPATION** {{.Occupation}} | **STATUS** {{.Status}} | **LOCATION** {{.Location}} | **TUBE** {{.Tube}} | **ARCHETYPE** {{.Archetype}}

---

## {{.PrimaryTraits}}

### {{.SecondaryTraits}}

---

## MOTIVATIONS

{{bullets .Motivations}}

---

## BEHAVIOR & HABITS

{{bullets .Behavior}}

---

## GOALS & NEEDS

{{bullets .Goals}}

---

## FRUSTRATIONS

{{bullets .Frustrations}}

---

"{{.Quote}}"
`

var textTemplate = template.Must(template.New("persona").Funcs(template.FuncMap{
	"bullets": bullets,
}).Parse(textLayout))

// Text renders the markdown-style persona layout.
func Text(p model.Persona) (string, error) {
	var sb strings.Builder
	if err := textTemplate.Execute(&sb, p.WithDefaults()); err != nil {
		return "", fmt.Errorf("failed to render persona text: %w", err)
	}
	return sb.String(), nil
}

// Report prefixes Text with the offline report header.
func Report(p model.Persona, sourceURL string, generated time.Time) (string, error) {
	body, err := Text(p)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Reddit User Persona Report\n")
	fmt.Fprintf(&sb, "Generated: %s\n", generated.Format(time.DateTime))
	fmt.Fprintf(&sb, "Source: %s\n\n", sourceURL)
	sb.WriteString(body)
	return sb.String(), nil
}

func bullets(items []string) string {
	if len(items) == 0 {
		return "- " + model.NoData
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n")
}
