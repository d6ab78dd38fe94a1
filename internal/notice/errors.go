package notice

import (
	"errors"
	"fmt"
)

// Kind classifies a parse failure.
type Kind int

const (
	// KindInternal covers unexpected failures inside the parse pipeline,
	// including recovered panics from the PDF layer.
	KindInternal Kind = iota
	// KindScannedDocument marks documents without a usable text layer.
	KindScannedDocument
	// KindNoSections marks readable documents in which no usable auction
	// section could be recognized.
	KindNoSections
)

// ParseError is the typed failure returned by Parse. Its message is what
// gets recorded in the stored details for a failed document.
type ParseError struct {
	Kind Kind
	Err  error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindScannedDocument:
		return fmt.Sprintf("scanned document: %v", e.Err)
	case KindNoSections:
		return fmt.Sprintf("no sections found: %v", e.Err)
	default:
		return fmt.Sprintf("unexpected parse failure: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a ParseError of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}
