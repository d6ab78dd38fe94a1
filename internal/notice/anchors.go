package notice

import (
	"regexp"
	"sort"
	"strings"

	"github.com/courtdata-tw/foreclosure-notices/internal/pdfdoc"
)

// contentLabelPatterns lists the section labels subject to the left
// margin filter, in a fixed order so repeated runs locate anchors
// identically.
var contentLabelPatterns = []struct {
	kind AnchorKind
	re   *regexp.Regexp
}{
	{AnchorUsage, usageLabelRE},
	{AnchorRemarks, remarksLabelRE},
}

// locateAnchors scans every page for section labels and returns the
// surviving anchors sorted by page and vertical position. Usage and
// remarks matches beyond the label column are discarded as in-body
// quotations of the label text; lot labels are kept wherever they appear.
func locateAnchors(doc pdfdoc.Document, policy LayoutPolicy) ([]Anchor, error) {
	var anchors []Anchor

	for page := 0; page < doc.PageCount(); page++ {
		lots, err := doc.FindAll(page, lotLineRE)
		if err != nil {
			return nil, err
		}
		for _, s := range lots {
			anchors = append(anchors, Anchor{
				Kind:   AnchorLot,
				Page:   s.Page,
				Top:    s.Top,
				Bottom: s.Bottom,
				Left:   s.Left,
				Label:  lotLabel(s.Text),
			})
		}

		for _, p := range contentLabelPatterns {
			spans, err := doc.FindAll(page, p.re)
			if err != nil {
				return nil, err
			}
			for _, s := range spans {
				if s.Left > policy.LabelLeftMax {
					continue
				}
				anchors = append(anchors, Anchor{
					Kind:   p.kind,
					Page:   s.Page,
					Top:    s.Top,
					Bottom: s.Bottom,
					Left:   s.Left,
				})
			}
		}
	}

	sort.SliceStable(anchors, func(i, j int) bool {
		if anchors[i].Page != anchors[j].Page {
			return anchors[i].Page < anchors[j].Page
		}
		return anchors[i].Top < anchors[j].Top
	})
	return anchors, nil
}

// lotLabel pulls the lot designation out of a matched label line. A
// quote-wrapped name wins; otherwise the first whitespace-separated token
// after the colon is used, stripped of any wrapping quote characters.
func lotLabel(match string) string {
	m := lotLineRE.FindStringSubmatch(match)
	if len(m) < 2 {
		return ""
	}
	rest := strings.TrimSpace(m[1])
	if rest == "" {
		return ""
	}
	if q := quotedLabelRE.FindStringSubmatch(rest); q != nil {
		return strings.TrimSpace(q[1])
	}
	if fields := strings.Fields(rest); len(fields) > 0 {
		rest = fields[0]
	}
	return strings.Trim(rest, `"'「」『』（）()`)
}
