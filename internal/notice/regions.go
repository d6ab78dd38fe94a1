package notice

import (
	"strings"

	"github.com/courtdata-tw/foreclosure-notices/internal/pdfdoc"
)

// extractRegion returns the text inside the rectangle running from a
// label's bottom edge down to the end position, crossing page boundaries
// as needed. On the first page the crop starts below the label; on
// intervening pages it covers the whole page; on the final page it stops
// at the end position. Page texts are concatenated in page order.
func extractRegion(doc pdfdoc.Document, startPage int, startTop float64, end Position) (string, error) {
	var parts []string

	for page := startPage; page <= end.Page && page < doc.PageCount(); page++ {
		_, height, err := doc.PageSize(page)
		if err != nil {
			return "", err
		}

		top := 0.0
		if page == startPage {
			top = startTop
		}
		bottom := height
		if page == end.Page {
			bottom = end.Top
		}
		if bottom <= top {
			continue
		}

		text, err := doc.CropText(page, top, bottom)
		if err != nil {
			return "", err
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n"), nil
}

// extractSections walks every lot, crops each content label's region and
// cleans it, and assembles the resulting bid sections. A lot yields a
// section only when at least one of its fields survives cleaning; when a
// label occurs more than once inside a lot, the first occurrence with
// usable content wins.
func extractSections(doc pdfdoc.Document, anchors []Anchor, lots []LotInterval, header string) ([]BidSection, error) {
	var sections []BidSection

	for _, lot := range lots {
		content := contentAnchorsIn(anchors, lot)

		var usage, remarks string
		for j, a := range content {
			end := lot.End
			if j+1 < len(content) {
				end = Position{Page: content[j+1].Page, Top: content[j+1].Top}
			}

			raw, err := extractRegion(doc, a.Page, a.Bottom, end)
			if err != nil {
				return nil, err
			}
			text := cleanField(a.Kind, raw)
			if text == "" {
				continue
			}

			switch a.Kind {
			case AnchorUsage:
				if usage == "" {
					usage = text
				}
			case AnchorRemarks:
				if remarks == "" {
					remarks = text
				}
			}
		}

		if usage == "" && remarks == "" {
			continue
		}
		sections = append(sections, BidSection{
			BidName: lot.Label,
			Header:  header,
			Usage:   usage,
			Remarks: remarks,
		})
	}

	return sections, nil
}
