// Package pdfdoc provides positioned text access to PDF documents: per-page
// text lines with their vertical extents, regexp search with page
// coordinates, and rectangular text cropping. Pages are 0-indexed and
// vertical offsets grow downward from the top of the page, so callers can
// reason about reading order without touching PDF's bottom-origin
// coordinate space.
package pdfdoc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Document is the read surface the notice parser works against. A
// Document is paginated, reports page geometry in top-down coordinates,
// and can locate pattern occurrences and crop rectangular text regions.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// PageSize returns the width and height of a page in layout units.
	PageSize(page int) (width, height float64, err error)

	// PageText returns the plain text of a page in reading order.
	PageText(page int) (string, error)

	// FindAll returns every occurrence of the pattern on a page, with the
	// vertical extent and horizontal origin of each match.
	FindAll(page int, re *regexp.Regexp) ([]Span, error)

	// CropText returns the text of all lines whose vertical midpoint falls
	// inside [top, bottom) on the given page.
	CropText(page int, top, bottom float64) (string, error)

	// HasImageStreams reports whether the document carries image XObject
	// streams, which usually indicates scanned page images.
	HasImageStreams() bool
}

// Span is one positioned occurrence of a pattern.
type Span struct {
	Page   int
	Top    float64
	Bottom float64
	Left   float64
	Text   string
}

// Line is one assembled text line with its bounding extents on the page.
type Line struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
	Text   string
}

// LeftAt estimates the horizontal origin of the character starting at byte
// offset off in the line text. Offset zero maps to the line's left edge;
// later offsets are interpolated across the line's width, which is accurate
// enough for margin tests on CJK text where glyph widths are near uniform.
func (l Line) LeftAt(off int) float64 {
	if off <= 0 || l.Right <= l.Left {
		return l.Left
	}
	total := utf8.RuneCountInString(l.Text)
	if total == 0 {
		return l.Left
	}
	idx := utf8.RuneCountInString(l.Text[:off])
	return l.Left + (l.Right-l.Left)*float64(idx)/float64(total)
}

// SearchLines returns every match of re across the given lines as
// positioned spans. The page index is recorded verbatim in each span.
func SearchLines(page int, lines []Line, re *regexp.Regexp) []Span {
	var spans []Span
	for _, ln := range lines {
		for _, loc := range re.FindAllStringIndex(ln.Text, -1) {
			spans = append(spans, Span{
				Page:   page,
				Top:    ln.Top,
				Bottom: ln.Bottom,
				Left:   ln.LeftAt(loc[0]),
				Text:   ln.Text[loc[0]:loc[1]],
			})
		}
	}
	return spans
}

// CropLines returns the text of all lines whose vertical midpoint falls
// inside [top, bottom), joined with newlines in page order. The midpoint
// rule keeps a boundary line out of the region that merely touches it,
// so a crop starting at a label's bottom edge excludes the label line
// itself.
func CropLines(lines []Line, top, bottom float64) string {
	var b strings.Builder
	for _, ln := range lines {
		mid := (ln.Top + ln.Bottom) / 2
		if mid < top || mid >= bottom {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(ln.Text)
	}
	return b.String()
}
