package reference

import (
	"cmp"
	"fmt"
	"slices"
)

// Patch holds optional field updates. Nil fields are left unchanged.
type Patch struct {
	Title     *string
	Authors   *[]string
	Year      *int
	Journal   *string
	Volume    *string
	Issue     *string
	Pages     *string
	DOI       *string
	URL       *string
	Publisher *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Authors == nil && p.Year == nil &&
		p.Journal == nil && p.Volume == nil && p.Issue == nil &&
		p.Pages == nil && p.DOI == nil && p.URL == nil && p.Publisher == nil
}

// NextCitationNumber returns the number a new reference of the document gets.
func NextCitationNumber(refs []Reference, documentID string) int {
	n := 0
	for _, r := range refs {
		if r.DocumentID == documentID {
			n++
		}
	}
	return n + 1
}

// Find returns the index of the document's reference with the given number.
func Find(refs []Reference, documentID string, number int) (int, bool) {
	for i, r := range refs {
		if r.DocumentID == documentID && r.CitationNumber == number {
			return i, true
		}
	}
	return -1, false
}

// Add appends ref as the next citation of its document and formats it.
func Add(refs []Reference, ref Reference) []Reference {
	ref.CitationNumber = NextCitationNumber(refs, ref.DocumentID)
	if ref.Authors == nil {
		ref.Authors = []string{}
	}
	if ref.OriginalFormat == "" {
		ref.OriginalFormat = StyleUnknown
	}
	ref.FormattedIEEE = FormatIEEE(ref)
	return append(refs, ref)
}

// ApplyPatch applies p to r and regenerates the formatted citation.
func ApplyPatch(r *Reference, p Patch) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Authors != nil {
		r.Authors = *p.Authors
	}
	if p.Year != nil {
		r.Year = *p.Year
	}
	if p.Journal != nil {
		r.Journal = *p.Journal
	}
	if p.Volume != nil {
		r.Volume = *p.Volume
	}
	if p.Issue != nil {
		r.Issue = *p.Issue
	}
	if p.Pages != nil {
		r.Pages = *p.Pages
	}
	if p.DOI != nil {
		r.DOI = *p.DOI
	}
	if p.URL != nil {
		r.URL = *p.URL
	}
	if p.Publisher != nil {
		r.Publisher = *p.Publisher
	}
	r.FormattedIEEE = FormatIEEE(*r)
}

// Update patches the document's reference with the given number in place
// and returns the updated copy.
func Update(refs []Reference, documentID string, number int, p Patch) (Reference, error) {
	idx, ok := Find(refs, documentID, number)
	if !ok {
		return Reference{}, fmt.Errorf("%w: [%d] in document %q", ErrNotFound, number, documentID)
	}
	ApplyPatch(&refs[idx], p)
	return refs[idx], nil
}

// Delete removes the document's reference with the given number and
// decrements every greater number of the same document by one, keeping
// the sequence contiguous. The input slice is not modified.
//
// Formatted strings of renumbered references are not regenerated, so
// their embedded [n] goes stale; call Reformat to refresh them.
func Delete(refs []Reference, documentID string, number int) ([]Reference, error) {
	idx, ok := Find(refs, documentID, number)
	if !ok {
		return nil, fmt.Errorf("%w: [%d] in document %q", ErrNotFound, number, documentID)
	}

	out := make([]Reference, 0, len(refs)-1)
	for i, r := range refs {
		if i == idx {
			continue
		}
		if r.DocumentID == documentID && r.CitationNumber > number {
			r.CitationNumber--
		}
		out = append(out, r)
	}
	return out, nil
}

// Reformat regenerates the formatted citation of every reference of the
// document and returns how many changed.
func Reformat(refs []Reference, documentID string) int {
	changed := 0
	for i := range refs {
		if refs[i].DocumentID != documentID {
			continue
		}
		formatted := FormatIEEE(refs[i])
		if formatted != refs[i].FormattedIEEE {
			refs[i].FormattedIEEE = formatted
			changed++
		}
	}
	return changed
}

// ForDocument returns the document's references sorted by citation number.
func ForDocument(refs []Reference, documentID string) []Reference {
	var out []Reference
	for _, r := range refs {
		if r.DocumentID == documentID {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b Reference) int {
		return cmp.Compare(a.CitationNumber, b.CitationNumber)
	})
	return out
}

// Documents returns the distinct document IDs in refs, sorted.
func Documents(refs []Reference) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range refs {
		if !seen[r.DocumentID] {
			seen[r.DocumentID] = true
			ids = append(ids, r.DocumentID)
		}
	}
	slices.Sort(ids)
	return ids
}

// CheckContiguous verifies that the document's citation numbers are
// exactly 1..N with no gaps or duplicates.
func CheckContiguous(refs []Reference, documentID string) error {
	docRefs := ForDocument(refs, documentID)
	for i, r := range docRefs {
		if r.CitationNumber != i+1 {
			return fmt.Errorf("document %q: expected citation [%d], found [%d]", documentID, i+1, r.CitationNumber)
		}
	}
	return nil
}
