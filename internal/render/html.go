package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Page is the data behind the full cluster page.
type Page struct {
	Keyword      string
	Rows         []Row
	Total        int
	ClusterCount int
	Skipped      int
}

// WriteRowsHTML writes one <tr> per row. All text is escaped.
func WriteRowsHTML(w io.Writer, rows []Row) error {
	return templates.ExecuteTemplate(w, "rows", rows)
}

// RowsHTML is WriteRowsHTML into a string.
func RowsHTML(rows []Row) (string, error) {
	var buf bytes.Buffer
	if err := WriteRowsHTML(&buf, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WritePage writes the complete HTML page.
func WritePage(w io.Writer, p Page) error {
	return templates.ExecuteTemplate(w, "page", p)
}
