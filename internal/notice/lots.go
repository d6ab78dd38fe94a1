package notice

import "github.com/courtdata-tw/foreclosure-notices/internal/pdfdoc"

// documentEnd returns the position just past the last line of the
// document: the bottom of the final page.
func documentEnd(doc pdfdoc.Document) (Position, error) {
	last := doc.PageCount() - 1
	_, height, err := doc.PageSize(last)
	if err != nil {
		return Position{}, err
	}
	return Position{Page: last, Top: height}, nil
}

// partitionLots slices the document into one interval per lot anchor,
// each running from its label to the next label or the document end. A
// document without lot anchors is treated as a single unnamed lot
// covering everything.
func partitionLots(anchors []Anchor, end Position) []LotInterval {
	var lots []Anchor
	for _, a := range anchors {
		if a.Kind == AnchorLot {
			lots = append(lots, a)
		}
	}

	if len(lots) == 0 {
		return []LotInterval{{
			Label: DefaultLotName,
			Start: Position{Page: 0, Top: 0},
			End:   end,
		}}
	}

	intervals := make([]LotInterval, len(lots))
	for i, a := range lots {
		intervals[i] = LotInterval{
			Label: a.Label,
			Start: Position{Page: a.Page, Top: a.Top},
			End:   end,
		}
		if i+1 < len(lots) {
			intervals[i].End = Position{Page: lots[i+1].Page, Top: lots[i+1].Top}
		}
	}
	return intervals
}

// contentAnchorsIn returns the usage and remarks anchors that fall inside
// the lot interval, in document order. The interval start is inclusive so
// a content label sharing the lot label's line stays with that lot.
func contentAnchorsIn(anchors []Anchor, lot LotInterval) []Anchor {
	var content []Anchor
	for _, a := range anchors {
		if a.Kind == AnchorLot {
			continue
		}
		pos := Position{Page: a.Page, Top: a.Top}
		if pos.Before(lot.Start) || !pos.Before(lot.End) {
			continue
		}
		content = append(content, a)
	}
	return content
}
