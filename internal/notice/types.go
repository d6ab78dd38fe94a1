// Package notice parses Taiwanese judicial foreclosure auction notices.
// A notice PDF announces one or more lots, each carrying free-text
// sections for usage condition (使用情形) and remarks (備註). The sections
// have no markup; they are bounded by the positions of printed labels, so
// parsing is anchor driven: locate the labels, partition the document into
// per-lot intervals, crop the text regions between labels, and clean the
// spill-over each region picks up from running headers, neighboring
// sections and page footers.
package notice

// AnchorKind identifies which printed label an anchor was found under.
type AnchorKind int

const (
	// AnchorLot marks a lot designation label (标别).
	AnchorLot AnchorKind = iota
	// AnchorUsage marks a usage condition label (使用情形).
	AnchorUsage
	// AnchorRemarks marks a remarks label (備註).
	AnchorRemarks
)

// String returns a short name for logging and test output.
func (k AnchorKind) String() string {
	switch k {
	case AnchorLot:
		return "lot"
	case AnchorUsage:
		return "usage"
	case AnchorRemarks:
		return "remarks"
	default:
		return "unknown"
	}
}

// Anchor is one located label occurrence with its page geometry.
type Anchor struct {
	Kind   AnchorKind
	Page   int
	Top    float64
	Bottom float64
	Left   float64
	// Label holds the lot designation for AnchorLot anchors.
	Label string
}

// Position is a point in document space, ordered by page then by vertical
// offset from the page top.
type Position struct {
	Page int
	Top  float64
}

// Before reports whether p precedes q in reading order.
func (p Position) Before(q Position) bool {
	if p.Page != q.Page {
		return p.Page < q.Page
	}
	return p.Top < q.Top
}

// LotInterval is the document span governed by one lot designation,
// running from the lot's label to the next lot's label or the end of the
// document.
type LotInterval struct {
	Label string
	Start Position
	End   Position
}

// DefaultLotName labels the single implicit lot of a document that
// carries no lot designations at all.
const DefaultLotName = "N/A"

// LayoutPolicy carries the layout thresholds of the notice form. The
// values describe the printed template, not any particular document, so
// the defaults apply to every notice from the same court system.
type LayoutPolicy struct {
	// LabelLeftMax is the largest horizontal origin at which a usage or
	// remarks label still counts as a section heading. Labels further
	// right are quotations of the label text inside section bodies.
	LabelLeftMax float64

	// MinReadableChars is the minimum amount of text on the first page
	// for the document to count as machine readable rather than scanned.
	MinReadableChars int
}

// DefaultLayoutPolicy returns the thresholds of the standard auction
// notice form.
func DefaultLayoutPolicy() LayoutPolicy {
	return LayoutPolicy{
		LabelLeftMax:     100.0,
		MinReadableChars: 100,
	}
}

// BidSection is one lot's extracted content. The JSON names of the two
// content fields keep the source-document labels so downstream renderers
// can show them verbatim.
type BidSection struct {
	BidName string `json:"bidName"`
	Header  string `json:"header"`
	Usage   string `json:"使用情形"`
	Remarks string `json:"備註"`
}

// Details is the parse outcome for one document: either the extracted
// sections or an error message, never both.
type Details struct {
	BidSections []BidSection `json:"bidSections,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// DetailsForError shapes a failure into the details payload recorded for
// the document.
func DetailsForError(err error) *Details {
	return &Details{Error: err.Error()}
}
