package paper

import (
	"regexp"
	"strings"

	"github.com/matsen/ieeedraft/internal/richtext"
)

var (
	abstractPattern   = regexp.MustCompile(`(?i)^\*{0,2}abstract\*{0,2}(?:\s*[—–:\-]|\s|$)\s*`)
	keywordsPattern   = regexp.MustCompile(`(?i)^\*{0,2}keywords\*{0,2}(?:\s*[—–:\-]|\s|$)\s*`)
	referencesPattern = regexp.MustCompile(`(?i)^\*{0,2}(?:#{1,3}\s*)?(?:[IVXLC]+\.\s*)?references\*{0,2}$`)
	romanHeading      = regexp.MustCompile(`(?i)^[IVXLC]+\.\s+`)
	headingMarkup     = regexp.MustCompile(`^#{1,3}\s*`)
	romanPrefix       = regexp.MustCompile(`(?i)^[IVXLC]+\.\s*`)
	keywordSeparator  = regexp.MustCompile(`[,;]`)
	referenceNumber   = regexp.MustCompile(`^\[?\d+\]?\.?\s*`)
	referenceBullet   = regexp.MustCompile(`^-\s*`)
)

// KnownSections are the section names that end an abstract block. The
// list is fixed: a custom section name does not end an abstract.
var KnownSections = []string{
	"introduction",
	"literature review",
	"related work",
	"methodology",
	"methods",
	"results",
	"discussion",
	"results and discussion",
	"conclusion",
	"conclusions",
	"future work",
	"acknowledgments",
	"acknowledgements",
}

// parser holds the state of one forward pass over the document lines.
type parser struct {
	lines []string
	out   *Paper

	currentSection string
	sectionOpen    bool
	currentContent []string

	titleFound    bool
	abstractFound bool
	keywordsFound bool
}

// ParseText parses a plain-text draft. See Parse.
func ParseText(text, fallbackTitle string) *Paper {
	return Parse(richtext.FromString(text), fallbackTitle)
}

// Parse classifies each line of content as title, abstract, keywords,
// section header, reference or body text, in a single forward pass.
//
// Rules are tried in a fixed order per line: Abstract, Keywords,
// References, heading, plain text. Parsing never fails; content that
// matches nothing yields an empty paper titled fallbackTitle (or
// DefaultTitle when fallbackTitle is empty).
func Parse(content richtext.Content, fallbackTitle string) *Paper {
	if fallbackTitle == "" {
		fallbackTitle = DefaultTitle
	}

	out := &Paper{
		Title:      fallbackTitle,
		Keywords:   []string{},
		Sections:   []Section{},
		References: []string{},
	}
	if content.IsEmpty() {
		return out
	}

	p := &parser{
		lines: strings.Split(content.Text(), "\n"),
		out:   out,
	}
	p.run()
	return out
}

func (p *parser) run() {
	for i := 0; i < len(p.lines); i++ {
		line := strings.TrimSpace(p.lines[i])

		if line == "" {
			if p.sectionOpen {
				p.currentContent = append(p.currentContent, "")
			}
			continue
		}

		if !p.abstractFound && abstractPattern.MatchString(line) {
			i = p.collectAbstract(i, line)
			continue
		}

		if !p.keywordsFound && keywordsPattern.MatchString(line) {
			p.parseKeywords(line)
			continue
		}

		if referencesPattern.MatchString(line) {
			p.flushSection()
			p.collectReferences(i + 1)
			return
		}

		if strings.HasPrefix(line, "#") || romanHeading.MatchString(line) {
			p.startHeading(line)
			continue
		}

		if name, ok := knownSectionHeading(line); ok {
			p.flushSection()
			p.openSection(name)
			continue
		}

		p.addBodyLine(line)
	}

	p.flushSection()
}

// collectAbstract stores the remainder of the marker line plus every
// following non-blank line up to a terminator. It returns the index of
// the last consumed line.
func (p *parser) collectAbstract(i int, line string) int {
	var parts []string
	if rest := abstractPattern.ReplaceAllString(line, ""); rest != "" {
		parts = append(parts, rest)
	}

	j := i + 1
	for ; j < len(p.lines); j++ {
		next := strings.TrimSpace(p.lines[j])
		if endsAbstract(next) {
			break
		}
		if next != "" {
			parts = append(parts, next)
		}
	}

	p.out.Abstract = strings.TrimSpace(strings.Join(parts, " "))
	p.abstractFound = true
	return j - 1
}

func endsAbstract(line string) bool {
	if strings.HasPrefix(line, "#") || keywordsPattern.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	for _, s := range KnownSections {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func (p *parser) parseKeywords(line string) {
	rest := keywordsPattern.ReplaceAllString(line, "")
	keywords := []string{}
	for _, k := range keywordSeparator.Split(rest, -1) {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	p.out.Keywords = keywords
	p.keywordsFound = true
}

// collectReferences consumes every remaining line as a reference entry.
func (p *parser) collectReferences(from int) {
	for _, raw := range p.lines[from:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		entry := referenceNumber.ReplaceAllString(line, "")
		entry = referenceBullet.ReplaceAllString(entry, "")
		if entry = strings.TrimSpace(entry); entry != "" {
			p.out.References = append(p.out.References, entry)
		}
	}
}

func (p *parser) startHeading(line string) {
	p.flushSection()

	title := headingMarkup.ReplaceAllString(line, "")
	title = strings.TrimSpace(romanPrefix.ReplaceAllString(title, ""))

	// Only a first top-level heading becomes the document title.
	if len(p.out.Sections) == 0 && !p.titleFound && strings.HasPrefix(line, "# ") {
		p.out.Title = title
		p.titleFound = true
		return
	}

	p.openSection(title)
}

func (p *parser) openSection(title string) {
	p.currentSection = title
	p.sectionOpen = true
	p.currentContent = nil
}

func (p *parser) flushSection() {
	if !p.sectionOpen {
		return
	}
	p.out.Sections = append(p.out.Sections, Section{
		Title:   p.currentSection,
		Content: strings.TrimSpace(strings.Join(p.currentContent, "\n")),
	})
	p.sectionOpen = false
	p.currentSection = ""
	p.currentContent = nil
}

func (p *parser) addBodyLine(line string) {
	if p.sectionOpen {
		p.currentContent = append(p.currentContent, line)
		return
	}
	// Text before any heading reads as the abstract.
	if !p.abstractFound && len(p.out.Sections) == 0 {
		if p.out.Abstract == "" {
			p.out.Abstract = line
		} else {
			p.out.Abstract += " " + line
		}
	}
}

// knownSectionHeading reports whether a bare line names a known section,
// e.g. "Introduction" or "**Conclusion:**".
func knownSectionHeading(line string) (string, bool) {
	name := strings.Trim(line, "*")
	name = strings.TrimSpace(strings.TrimSuffix(name, ":"))
	name = strings.Trim(name, "*")
	lower := strings.ToLower(name)
	for _, s := range KnownSections {
		if lower == s {
			return name, true
		}
	}
	return "", false
}
