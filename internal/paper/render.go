package paper

import (
	"fmt"
	"io"
	"strings"
)

// DefaultWrapWidth is the column width used by RenderText when none is given.
const DefaultWrapWidth = 72

// EmptyPlaceholder is printed in place of the body of an empty paper.
const EmptyPlaceholder = "Paste or write content in the editor to see the IEEE preview."

// RenderText writes a plain-text IEEE preview of p: title, abstract,
// keywords, Roman-numbered sections and bracket-numbered references.
func RenderText(w io.Writer, p *Paper, width int) error {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var b strings.Builder
	b.WriteString(center(p.Title, width))
	b.WriteString("\n\n")

	if p.Abstract != "" {
		b.WriteString(wrap("Abstract—"+p.Abstract, width))
		b.WriteString("\n\n")
	}
	if len(p.Keywords) > 0 {
		b.WriteString(wrap("Keywords—"+strings.Join(p.Keywords, ", "), width))
		b.WriteString("\n\n")
	}

	for i, s := range p.Sections {
		heading := fmt.Sprintf("%s. %s", Roman(i+1), strings.ToUpper(s.Title))
		b.WriteString(center(heading, width))
		b.WriteString("\n")
		for _, para := range paragraphs(s.Content) {
			b.WriteString(wrap("    "+para, width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(p.References) > 0 {
		b.WriteString(center("REFERENCES", width))
		b.WriteString("\n")
		for i, ref := range p.References {
			b.WriteString(wrap(fmt.Sprintf("[%d] %s", i+1, ref), width))
			b.WriteString("\n")
		}
	}

	if p.IsEmpty() {
		b.WriteString(EmptyPlaceholder)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// paragraphs splits section content on blank lines and joins the lines of
// each paragraph with a space.
func paragraphs(content string) []string {
	var out []string
	for _, para := range strings.Split(content, "\n\n") {
		joined := strings.TrimSpace(strings.Join(strings.Split(para, "\n"), " "))
		if joined != "" {
			out = append(out, joined)
		}
	}
	return out
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

// wrap breaks text into lines of at most width runes, keeping leading
// indentation on the first line only.
func wrap(text string, width int) string {
	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	var current strings.Builder
	current.WriteString(indent)
	current.WriteString(words[0])
	currentLen := len([]rune(indent)) + len([]rune(words[0]))

	for _, word := range words[1:] {
		wl := len([]rune(word))
		if currentLen+1+wl > width {
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentLen = wl
			continue
		}
		current.WriteString(" ")
		current.WriteString(word)
		currentLen += 1 + wl
	}
	lines = append(lines, current.String())

	return strings.Join(lines, "\n")
}
