package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/matsen/ieeedraft/internal/reference"
)

// Entry is one parsed BibTeX entry. Field names are lowercased.
type Entry struct {
	Type   string
	Key    string
	Fields map[string]string
}

// ParseBibTeX reads every entry in r. @string macros are expanded in the
// field values that follow them; a bare name with no definition is kept
// as written. @preamble and @comment blocks are skipped and text outside
// entries is ignored.
func ParseBibTeX(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibtex: %w", err)
	}

	p := &bibParser{src: []rune(string(data)), macros: make(map[string]string)}
	for name, month := range monthMacros {
		p.macros[name] = month
	}
	var entries []Entry
	for {
		e, ok, err := p.next()
		if err != nil {
			return entries, err
		}
		if !ok {
			break
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// monthMacros are predefined by the standard BibTeX styles.
var monthMacros = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "oct": "October", "nov": "November", "dec": "December",
}

type bibParser struct {
	src    []rune
	pos    int
	line   int
	macros map[string]string // lowercased name -> value
}

func (p *bibParser) errorf(format string, args ...any) error {
	return fmt.Errorf("bibtex line %d: %s", p.line+1, fmt.Sprintf(format, args...))
}

func (p *bibParser) peek() rune {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *bibParser) advance() rune {
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
	}
	return r
}

func (p *bibParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.peek()) {
		p.advance()
	}
}

func (p *bibParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := p.peek()
		if unicode.IsSpace(r) || strings.ContainsRune("{}(),=#\"", r) {
			break
		}
		p.advance()
	}
	return string(p.src[start:p.pos])
}

// next returns the next real entry, or ok=false at end of input.
func (p *bibParser) next() (Entry, bool, error) {
	for {
		for p.pos < len(p.src) && p.peek() != '@' {
			p.advance()
		}
		if p.pos >= len(p.src) {
			return Entry{}, false, nil
		}
		p.advance() // @

		typ := strings.ToLower(p.ident())
		p.skipSpace()
		open := p.peek()
		if open != '{' && open != '(' {
			continue // stray @ in free text
		}
		p.advance()
		closer := '}'
		if open == '(' {
			closer = ')'
		}

		switch typ {
		case "string":
			if err := p.stringBody(closer); err != nil {
				return Entry{}, false, err
			}
			continue
		case "comment", "preamble":
			if err := p.skipBalanced(closer); err != nil {
				return Entry{}, false, err
			}
			continue
		}

		e, err := p.entryBody(typ, closer)
		return e, err == nil, err
	}
}

// skipBalanced consumes input up to the closer matching an opener that
// has already been read.
func (p *bibParser) skipBalanced(closer rune) error {
	depth := 0
	for p.pos < len(p.src) {
		r := p.advance()
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case r == closer && depth == 0:
			return nil
		}
	}
	return p.errorf("unterminated block")
}

// stringBody reads the "name = value" of an @string block and records
// the macro.
func (p *bibParser) stringBody(closer rune) error {
	p.skipSpace()
	name := strings.ToLower(p.ident())
	if name == "" {
		return p.errorf("expected macro name in @string")
	}
	p.skipSpace()
	if p.peek() != '=' {
		return p.errorf("expected '=' after macro %q", name)
	}
	p.advance()

	value, err := p.value()
	if err != nil {
		return err
	}
	p.macros[name] = value

	p.skipSpace()
	if p.peek() == ',' {
		p.advance()
		p.skipSpace()
	}
	if p.peek() != closer {
		return p.errorf("unterminated @string %q", name)
	}
	p.advance()
	return nil
}

func (p *bibParser) entryBody(typ string, closer rune) (Entry, error) {
	e := Entry{Type: typ, Fields: make(map[string]string)}

	p.skipSpace()
	e.Key = strings.TrimSpace(p.ident())
	p.skipSpace()
	if p.peek() == ',' {
		p.advance()
	}

	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return e, p.errorf("unterminated entry %q", e.Key)
		}
		if p.peek() == closer {
			p.advance()
			return e, nil
		}

		name := strings.ToLower(p.ident())
		if name == "" {
			return e, p.errorf("expected field name in entry %q, got %q", e.Key, string(p.peek()))
		}
		p.skipSpace()
		if p.peek() != '=' {
			return e, p.errorf("expected '=' after field %q", name)
		}
		p.advance()

		value, err := p.value()
		if err != nil {
			return e, err
		}
		e.Fields[name] = normalizeSpace(value)

		p.skipSpace()
		if p.peek() == ',' {
			p.advance()
		}
	}
}

// value reads a field value: braced, quoted, or bare, joined by #. Bare
// names are replaced by their @string definition when one exists.
func (p *bibParser) value() (string, error) {
	var b strings.Builder
	for {
		p.skipSpace()
		switch r := p.peek(); {
		case r == '{':
			p.advance()
			s, err := p.until('}')
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case r == '"':
			p.advance()
			s, err := p.until('"')
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		default:
			id := p.ident()
			if v, ok := p.macros[strings.ToLower(id)]; ok {
				id = v
			}
			b.WriteString(id)
		}

		p.skipSpace()
		if p.peek() != '#' {
			return b.String(), nil
		}
		p.advance()
	}
}

// until reads to the unnested terminator. Inner braces are dropped.
func (p *bibParser) until(term rune) (string, error) {
	var b strings.Builder
	depth := 0
	for p.pos < len(p.src) {
		r := p.advance()
		switch {
		case r == '\\' && p.pos < len(p.src):
			b.WriteRune(r)
			b.WriteRune(p.advance())
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case r == term && depth == 0:
			return b.String(), nil
		default:
			b.WriteRune(r)
		}
	}
	return "", p.errorf("unterminated value")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var latexUnescaper = strings.NewReplacer(
	`\textbackslash`, `\`,
	`\textasciitilde`, "~",
	`\textasciicircum`, "^",
	`\&`, "&",
	`\%`, "%",
	`\$`, "$",
	`\#`, "#",
	`\_`, "_",
	`\{`, "{",
	`\}`, "}",
	"--", "-",
)

// EntryToReference maps an entry onto an unnumbered reference of
// documentID. The caller numbers and formats it via reference.Add.
func EntryToReference(e Entry, documentID string) reference.Reference {
	f := func(name string) string {
		return latexUnescaper.Replace(e.Fields[name])
	}

	ref := reference.Reference{
		DocumentID:     documentID,
		Title:          f("title"),
		Authors:        splitBibAuthors(f("author")),
		Journal:        f("journal"),
		Volume:         f("volume"),
		Issue:          f("number"),
		Pages:          f("pages"),
		Publisher:      f("publisher"),
		DOI:            normalizeDOI(e.Fields["doi"]),
		URL:            e.Fields["url"],
		OriginalFormat: reference.StyleUnknown,
	}
	if ref.Journal == "" {
		ref.Journal = f("booktitle")
	}
	if y, err := strconv.Atoi(strings.TrimSpace(e.Fields["year"])); err == nil {
		ref.Year = y
	}
	return ref
}

var authorSeparator = regexp.MustCompile(`\s+and\s+`)

// splitBibAuthors splits "Doe, Jane and John Smith" into display names
// "Jane Doe" and "John Smith".
func splitBibAuthors(field string) []string {
	authors := []string{}
	if strings.TrimSpace(field) == "" {
		return authors
	}
	for _, name := range authorSeparator.Split(field, -1) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if last, first, ok := strings.Cut(name, ","); ok {
			name = strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
		}
		authors = append(authors, name)
	}
	return authors
}

// BibTeXIndex indexes existing BibTeX entries for deduplication.
type BibTeXIndex struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// DOIs maps DOI values to citation keys
	DOIs map[string]string
}

// NewBibTeXIndex creates an empty BibTeX index.
func NewBibTeXIndex() *BibTeXIndex {
	return &BibTeXIndex{
		Keys: make(map[string]bool),
		DOIs: make(map[string]string),
	}
}

// HasEntry returns true if the entry already exists (by DOI or key).
// DOI is the primary match; citation key is the fallback if no DOI.
func (idx *BibTeXIndex) HasEntry(key, doi string) bool {
	if doi != "" {
		if _, exists := idx.DOIs[normalizeDOI(doi)]; exists {
			return true
		}
	}
	return idx.Keys[key]
}

// Add records an entry in the index.
func (idx *BibTeXIndex) Add(key, doi string) {
	idx.Keys[key] = true
	if doi = normalizeDOI(doi); doi != "" {
		idx.DOIs[doi] = key
	}
}

// ParseBibTeXFile builds an index from an existing .bib file.
// Returns an empty index if the file doesn't exist.
func ParseBibTeXFile(path string) (*BibTeXIndex, error) {
	idx := NewBibTeXIndex()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}
	defer file.Close()

	entries, err := ParseBibTeX(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, e := range entries {
		idx.Add(e.Key, e.Fields["doi"])
	}
	return idx, nil
}

// normalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(strings.TrimSpace(doi))
}

// AppendToBibFile appends BibTeX content to a file.
func AppendToBibFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	// Ensure we start on a new line
	_, err = file.WriteString("\n" + content)
	return err
}
