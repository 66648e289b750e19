// Package extract recovers structured paper metadata from free-text chat
// responses. The assistant answers paper-detail questions in one of two
// dialects: a labeled Markdown block (**Title:** ...) produced by its
// paper-lookup tool, or loose prose (a paper titled "..." authored by ...).
// Extract tries the labeled form first for each field and falls back to the
// prose form only when the labeled form yields nothing.
package extract

import (
	"regexp"
	"strings"

	"github.com/da-ros/researchpal/pkg/types"
)

// Field names a PaperRecord field recovered by Extract.
type Field string

const (
	FieldTitle      Field = "title"
	FieldAuthors    Field = "authors"
	FieldAbstract   Field = "abstract"
	FieldPublished  Field = "published"
	FieldCategories Field = "categories"
	FieldPDFURL     Field = "pdf_url"
	FieldEntryURL   Field = "entry_url"
	FieldJournalRef Field = "journal_ref"
	FieldDOI        Field = "doi"
)

// Tier identifies which dialect produced a field value.
type Tier int

const (
	TierNone Tier = iota
	TierStructured
	TierNatural
)

func (t Tier) String() string {
	switch t {
	case TierStructured:
		return "structured"
	case TierNatural:
		return "natural"
	default:
		return "none"
	}
}

// rule pairs the labeled pattern for a field with its prose fallback. Both
// patterns capture the value in group 1.
type rule struct {
	field      Field
	structured *regexp.Regexp
	natural    *regexp.Regexp
}

// labeled matches "**Label:** value" up to the end of the line.
func labeled(label string) *regexp.Regexp {
	return regexp.MustCompile(`\*\*` + regexp.QuoteMeta(label) + `:\*\*[ \t]*([^\n]+)`)
}

// bare matches "Label: value" without bold markers, tolerating a stray
// closing "**" right after the colon.
func bare(label string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(label) + `:(?:\*\*)?[ \t]*([^\n]+)`)
}

// untilSentenceEnd stops at a period followed by whitespace or end of text,
// so dotted category codes such as cs.AI survive.
const untilSentenceEnd = `(.+?)(?:\.(?:\s|\z)|\n|\z)`

var rules = []rule{
	{
		field:      FieldTitle,
		structured: labeled("Title"),
		natural:    regexp.MustCompile(`titled\s+["“]([^"”]+)["”]`),
	},
	{
		field:      FieldAuthors,
		structured: labeled("Authors"),
		natural:    regexp.MustCompile(`authored by\s+([^.\n]+)`),
	},
	{
		// The abstract may span lines; it runs to the next section marker.
		field:      FieldAbstract,
		structured: regexp.MustCompile(`(?s)\*\*Abstract:\*\*(.*?)(?:\*\*Additional Information|\*\*Summary|\z)`),
		natural:    regexp.MustCompile(`abstract of the paper discusses\s+([^.]+)`),
	},
	{
		field:      FieldPublished,
		structured: labeled("Published"),
		natural:    regexp.MustCompile(`published on\s+` + untilSentenceEnd),
	},
	{
		field:      FieldCategories,
		structured: labeled("Categories"),
		natural:    regexp.MustCompile(`categorized under\s+` + untilSentenceEnd),
	},
	{field: FieldPDFURL, structured: labeled("PDF URL"), natural: bare("PDF URL")},
	{field: FieldEntryURL, structured: labeled("Entry URL"), natural: bare("Entry URL")},
	{field: FieldJournalRef, structured: labeled("Journal Reference"), natural: bare("Journal Reference")},
	{field: FieldDOI, structured: labeled("DOI"), natural: bare("DOI")},
}

// Result is a PaperRecord together with the dialect each field came from.
type Result struct {
	Record types.PaperRecord
	Tiers  map[Field]Tier
}

// Extract builds a PaperRecord for arxivID from rawText. It never fails:
// fields that match neither dialect keep the defaults of
// types.NewPaperRecord, and arxivID is always taken from the caller.
func Extract(rawText, arxivID string) types.PaperRecord {
	return ExtractWithTiers(rawText, arxivID).Record
}

// ExtractWithTiers is Extract that also reports which dialect matched each
// field. Fields left at their default are reported as TierNone.
func ExtractWithTiers(rawText, arxivID string) Result {
	res := Result{
		Record: types.NewPaperRecord(arxivID),
		Tiers:  make(map[Field]Tier, len(rules)),
	}

	for _, r := range rules {
		value, tier := r.match(rawText)
		res.Tiers[r.field] = tier
		if tier == TierNone {
			continue
		}
		assign(&res.Record, r.field, value)
	}

	return res
}

// match returns the trimmed value of the first structured match, or of the
// first natural match when the structured pattern finds nothing. A match
// whose value trims to empty counts as nothing.
func (r rule) match(text string) (string, Tier) {
	if v, ok := firstGroup(r.structured, text); ok {
		return v, TierStructured
	}
	if v, ok := firstGroup(r.natural, text); ok {
		return v, TierNatural
	}
	return "", TierNone
}

func firstGroup(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

func assign(rec *types.PaperRecord, f Field, value string) {
	switch f {
	case FieldTitle:
		rec.Title = value
	case FieldAuthors:
		rec.Authors = splitList(value)
	case FieldAbstract:
		rec.Abstract = value
	case FieldPublished:
		rec.PublishedDate = value
	case FieldCategories:
		rec.Categories = splitList(value)
	case FieldPDFURL:
		rec.PDFURL = value
	case FieldEntryURL:
		rec.EntryURL = value
	case FieldJournalRef:
		rec.JournalRef = value
	case FieldDOI:
		rec.DOI = value
	}
}

// splitList splits a comma-separated list and trims each element. Elements
// that are empty after trimming ("A, , B" or a trailing comma) are dropped.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
