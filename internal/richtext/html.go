package richtext

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockElements start and end a line of their own.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"blockquote": true, "pre": true, "section": true, "article": true,
	"header": true, "footer": true, "table": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// skippedElements never contribute text.
var skippedElements = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true, "template": true,
}

// headingMarkers maps HTML headings to the markup the parser recognises.
var headingMarkers = map[string]string{
	"h1": "# ",
	"h2": "## ",
	"h3": "### ",
	"h4": "### ",
	"h5": "### ",
	"h6": "### ",
}

// ExtractHTML flattens editor HTML into lines in document order. Every
// block element starts a new line, so text a block holds before or after
// a nested block is kept as its own line, as is loose text between
// blocks. Headings keep Markdown heading markup so that the parser treats
// them as section headers. An empty block yields a blank line and <br>
// breaks the line.
func ExtractHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	w := &htmlWalker{}
	w.walk(doc.Selection)
	w.flush()
	return strings.Join(w.lines, "\n"), nil
}

// htmlWalker accumulates inline text until a block boundary.
type htmlWalker struct {
	lines  []string
	buf    strings.Builder
	marker string
}

func (w *htmlWalker) walk(s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		name := goquery.NodeName(c)
		switch {
		case name == "#text":
			w.buf.WriteString(c.Text())
		case strings.HasPrefix(name, "#"), skippedElements[name]:
			// comments, doctype
		case name == "br":
			w.flush()
		case name == "pre":
			w.flush()
			for _, line := range strings.Split(c.Text(), "\n") {
				if line = strings.Join(strings.Fields(line), " "); line != "" {
					w.lines = append(w.lines, line)
				}
			}
		case blockElements[name]:
			w.flush()
			before := len(w.lines)
			w.marker = headingMarkers[name]
			w.walk(c)
			w.flush()
			if len(w.lines) == before {
				w.lines = append(w.lines, "")
			}
		default:
			w.walk(c)
		}
	})
}

// flush emits the pending inline text as one line, if there is any.
func (w *htmlWalker) flush() {
	text := strings.Join(strings.Fields(w.buf.String()), " ")
	w.buf.Reset()
	if text != "" {
		w.lines = append(w.lines, w.marker+text)
	}
	w.marker = ""
}
