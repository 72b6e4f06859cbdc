package report

import (
	"errors"
	"io"
	"strings"
)

// ErrUnknownFormat is returned by RendererFor for unsupported formats.
var ErrUnknownFormat = errors.New("unknown report format")

// Renderer turns a Report into one output document. Implementations must not keep
// state between calls.
type Renderer interface {
	Format() string
	ContentType() string
	// FileName is the fixed download name, empty for documents shown inline.
	FileName() string
	Render(w io.Writer, r *Report) error
}

// Renderers lists every supported format.
func Renderers() []Renderer {
	return []Renderer{PrintRenderer{}, PDFRenderer{}, XLSXRenderer{}, CSVRenderer{}}
}

// RendererFor returns the renderer registered for format.
func RendererFor(format string) (Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	for _, r := range Renderers() {
		if r.Format() == format {
			return r, nil
		}
	}
	return nil, ErrUnknownFormat
}
