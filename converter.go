package pbexport

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-playbook-export/internal/fileutil"
	"github.com/alnah/go-playbook-export/internal/markup"
)

// DocumentConverter turns one export unit into paginated PDF bytes.
// Implementations own a single staging area, so conversions must not
// overlap; the exporter's entry guard takes care of that.
type DocumentConverter interface {
	ToPDF(ctx context.Context, unit ExportUnit) ([]byte, error)
	Close() error
}

// defaultTimeout bounds one PDF render.
const defaultTimeout = 60 * time.Second

// PDFConverter renders units through goldmark and headless Chrome:
// markdown → styled HTML → staged temp file → printed PDF.
type PDFConverter struct {
	html     *markup.Renderer
	style    string
	timeout  time.Duration
	renderer *rodRenderer
}

// ConverterOption configures a PDFConverter.
type ConverterOption func(*PDFConverter)

// WithTimeout sets the per-document render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) ConverterOption {
	if d <= 0 {
		panic("pbexport: WithTimeout duration must be positive")
	}
	return func(c *PDFConverter) {
		c.timeout = d
	}
}

// WithStyle replaces the default export stylesheet.
func WithStyle(css string) ConverterOption {
	return func(c *PDFConverter) {
		c.style = css
	}
}

// NewPDFConverter creates a converter with the default export style.
func NewPDFConverter(opts ...ConverterOption) *PDFConverter {
	c := &PDFConverter{
		html:    markup.NewRenderer(),
		style:   exportStyle,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.renderer = newRodRenderer(c.timeout)
	return c
}

// ToPDF converts the unit's markdown to a styled HTML document, stages
// it to a temp file, and prints it with the fixed Letter geometry.
func (c *PDFConverter) ToPDF(ctx context.Context, unit ExportUnit) ([]byte, error) {
	htmlContent, err := c.html.ToHTML(ctx, unit.Markdown, unit.Title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	htmlContent = markup.InjectCSS(htmlContent, c.style)

	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: staging HTML: %v", ErrConversion, err)
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, path)
}

// Close releases the headless Chrome browser.
func (c *PDFConverter) Close() error {
	return c.renderer.Close()
}

// Compile-time interface check.
var _ DocumentConverter = (*PDFConverter)(nil)
