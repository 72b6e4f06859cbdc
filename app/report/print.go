package report

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/print.html
var templateFS embed.FS

var printTemplate = template.Must(template.New("print.html").
	Funcs(template.FuncMap{"issued": IssuedLine}).
	ParseFS(templateFS, "templates/print.html"))

// PrintRenderer produces a standalone page that opens the browser print dialog and
// closes itself once printing is done.
type PrintRenderer struct{}

func (PrintRenderer) Format() string      { return "print" }
func (PrintRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (PrintRenderer) FileName() string    { return "" }

func (PrintRenderer) Render(w io.Writer, r *Report) error {
	return printTemplate.Execute(w, r)
}
