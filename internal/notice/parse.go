package notice

import (
	"errors"
	"fmt"

	"github.com/courtdata-tw/foreclosure-notices/internal/pdfdoc"
)

// Parse extracts every lot's usage and remarks sections from an open
// document. The result carries at least one section; every failure mode
// is reported as a ParseError whose kind distinguishes scanned documents,
// documents without recognizable sections, and internal failures. Panics
// escaping the PDF layer are recovered here and reported as internal
// failures.
func Parse(doc pdfdoc.Document, policy LayoutPolicy) (result *Details, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ParseError{Kind: KindInternal, Err: fmt.Errorf("parse panicked: %v", r)}
		}
	}()

	if scanned, reason := looksScanned(doc, policy); scanned {
		return nil, &ParseError{Kind: KindScannedDocument, Err: errors.New(reason)}
	}

	anchors, err := locateAnchors(doc, policy)
	if err != nil {
		return nil, &ParseError{Kind: KindInternal, Err: fmt.Errorf("locate anchors: %w", err)}
	}

	end, err := documentEnd(doc)
	if err != nil {
		return nil, &ParseError{Kind: KindInternal, Err: fmt.Errorf("resolve document end: %w", err)}
	}

	lots := partitionLots(anchors, end)
	header := extractHeader(doc)

	sections, err := extractSections(doc, anchors, lots, header)
	if err != nil {
		return nil, &ParseError{Kind: KindInternal, Err: fmt.Errorf("extract sections: %w", err)}
	}
	if len(sections) == 0 {
		return nil, &ParseError{Kind: KindNoSections, Err: errors.New("no usable auction sections in document")}
	}

	return &Details{BidSections: sections}, nil
}

// ParseFile validates, opens and parses a PDF from disk. Validation
// failures surface as plain errors; a document that cannot be opened as
// a PDF is classified as scanned.
func ParseFile(path string, maxSize int64, policy LayoutPolicy) (*Details, error) {
	if err := pdfdoc.ValidateFile(path, maxSize); err != nil {
		return nil, err
	}

	doc, err := pdfdoc.Open(path)
	if err != nil {
		return nil, &ParseError{Kind: KindScannedDocument, Err: fmt.Errorf("document could not be read: %w", err)}
	}
	defer doc.Close()

	return Parse(doc, policy)
}
