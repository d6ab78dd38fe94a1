package store

import (
	"encoding/json"
	"fmt"

	"github.com/courtdata-tw/foreclosure-notices/internal/notice"
)

// Case is one record of the scraped case list. Raw retains the complete
// source record so page templates can show fields the pipeline itself
// never interprets.
type Case struct {
	CaseNumber string         `json:"caseNumber"`
	PDFURL     string         `json:"pdfUrl"`
	Raw        map[string]any `json:"-"`
}

// CaseDetails pairs a case number with its parse outcome.
type CaseDetails struct {
	CaseNumber     string         `json:"caseNumber"`
	AuctionDetails notice.Details `json:"auctionDetails"`
}

// sourceFile is the envelope of the case list object.
type sourceFile struct {
	Data []json.RawMessage `json:"data"`
}

// DecodeCases parses the case list object. The list lives under a "data"
// key; a missing key yields an empty list.
func DecodeCases(data []byte) ([]Case, error) {
	var src sourceFile
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("decode case list: %w", err)
	}

	cases := make([]Case, 0, len(src.Data))
	for i, raw := range src.Data {
		var c Case
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode case %d: %w", i, err)
		}
		if err := json.Unmarshal(raw, &c.Raw); err != nil {
			return nil, fmt.Errorf("decode case %d: %w", i, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// DecodeDetails parses the details object, a bare array of case details.
func DecodeDetails(data []byte) ([]CaseDetails, error) {
	var list []CaseDetails
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode details list: %w", err)
	}
	return list, nil
}

// EncodeDetails serializes the details list. An empty list encodes as an
// empty array, never null.
func EncodeDetails(list []CaseDetails) ([]byte, error) {
	if list == nil {
		list = []CaseDetails{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode details list: %w", err)
	}
	return data, nil
}
