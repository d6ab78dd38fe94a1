package notice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/courtdata-tw/foreclosure-notices/internal/pdfdoc"
)

// fakeDoc is an in-memory Document assembled from positioned lines, so
// pipeline behavior can be exercised without PDF fixtures.
type fakeDoc struct {
	pages     [][]pdfdoc.Line
	width     float64
	height    float64
	hasImages bool
	textErr   map[int]error
}

func newFakeDoc(pages ...[]pdfdoc.Line) *fakeDoc {
	return &fakeDoc{
		pages:  pages,
		width:  595,
		height: 842,
	}
}

func (d *fakeDoc) PageCount() int {
	return len(d.pages)
}

func (d *fakeDoc) PageSize(page int) (float64, float64, error) {
	if err := d.check(page); err != nil {
		return 0, 0, err
	}
	return d.width, d.height, nil
}

func (d *fakeDoc) PageText(page int) (string, error) {
	if err := d.check(page); err != nil {
		return "", err
	}
	if err := d.textErr[page]; err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, ln := range d.pages[page] {
		sb.WriteString(ln.Text)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func (d *fakeDoc) FindAll(page int, re *regexp.Regexp) ([]pdfdoc.Span, error) {
	if err := d.check(page); err != nil {
		return nil, err
	}
	return pdfdoc.SearchLines(page, d.pages[page], re), nil
}

func (d *fakeDoc) CropText(page int, top, bottom float64) (string, error) {
	if err := d.check(page); err != nil {
		return "", err
	}
	return pdfdoc.CropLines(d.pages[page], top, bottom), nil
}

func (d *fakeDoc) HasImageStreams() bool {
	return d.hasImages
}

func (d *fakeDoc) check(page int) error {
	if page < 0 || page >= len(d.pages) {
		return fmt.Errorf("page %d out of range", page)
	}
	return nil
}

// ln builds a line occupying a 12-unit band below top, with the text
// spanning a 400-unit column from left.
func ln(top, left float64, text string) pdfdoc.Line {
	return pdfdoc.Line{
		Top:    top,
		Bottom: top + 12,
		Left:   left,
		Right:  left + 400,
		Text:   text,
	}
}
