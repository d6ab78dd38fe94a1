package notice

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/courtdata-tw/foreclosure-notices/internal/pdfdoc"
)

// looksScanned reports whether the document appears to be a page-image
// scan without a usable text layer, with a human-readable reason. Only
// the first page is examined; an extraction failure also counts as a
// scan.
func looksScanned(doc pdfdoc.Document, policy LayoutPolicy) (bool, string) {
	if doc.PageCount() == 0 {
		return true, "document has no pages"
	}

	text, err := doc.PageText(0)
	if err != nil {
		return true, fmt.Sprintf("first page text extraction failed: %v", err)
	}

	chars := utf8.RuneCountInString(strings.TrimSpace(text))
	if chars < policy.MinReadableChars {
		reason := fmt.Sprintf("first page has %d characters of text (minimum %d)",
			chars, policy.MinReadableChars)
		if doc.HasImageStreams() {
			reason += "; document contains image streams"
		}
		return true, reason
	}
	return false, ""
}
