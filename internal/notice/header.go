package notice

import (
	"strings"
	"unicode"

	"github.com/courtdata-tw/foreclosure-notices/internal/pdfdoc"
)

// ownerPlaceholder stands in for the property owner's name, which the
// published notices redact.
const ownerPlaceholder = "OOO"

// extractHeader finds the case docket in the document text and builds the
// header line attached to every section. The docket often crosses glyph
// runs in the text layer, so the match is whitespace tolerant and the
// result is compacted before use. Documents without a recognizable docket
// get an empty header. Extraction is best effort: pages whose text cannot
// be read are skipped.
func extractHeader(doc pdfdoc.Document) string {
	for page := 0; page < doc.PageCount(); page++ {
		text, err := doc.PageText(page)
		if err != nil {
			continue
		}
		m := docketRE.FindString(text)
		if m == "" {
			continue
		}
		return stripWhitespace(m) + " 財產所有人: " + ownerPlaceholder
	}
	return ""
}

// stripWhitespace removes every whitespace rune from s.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
