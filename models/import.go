package models

import (
	"fmt"
	"strings"
)

// SheetResult carries the per-sheet counters of one import run. Created and
// Updated come straight from the batch write's reported counts; Processed is
// the number of rows that survived mapping and were submitted.
type SheetResult struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
}

// RowIssue records a dropped row: the sheet it came from, its 1-based row
// number in that sheet, and why it was not written.
type RowIssue struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResults groups the per-sheet counters of one workbook import.
type ImportResults struct {
	Metals              SheetResult `json:"metals"`
	Products            SheetResult `json:"products"`
	VariantSummaries    SheetResult `json:"variantSummaries"`
	ExpandedVariants    SheetResult `json:"expandedVariants"`
	DYOExpandedVariants SheetResult `json:"dyoExpandedVariants"`
	DYOVariants         SheetResult `json:"dyoVariants"`
}

// ImportSummary is the response body of a bulk catalog upload.
type ImportSummary struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Duration string        `json:"duration"`
	Results  ImportResults `json:"results"`
	Issues   []RowIssue    `json:"issues,omitempty"`
	Summary  string        `json:"summary"`
}

// Digest renders the flattened one-line summary string.
func (r ImportResults) Digest() string {
	parts := []string{
		fmt.Sprintf("metals %d/%d/%d", r.Metals.Processed, r.Metals.Created, r.Metals.Updated),
		fmt.Sprintf("products %d/%d/%d", r.Products.Processed, r.Products.Created, r.Products.Updated),
		fmt.Sprintf("variants %d/%d/%d", r.VariantSummaries.Processed, r.VariantSummaries.Created, r.VariantSummaries.Updated),
		fmt.Sprintf("expanded %d/%d/%d", r.ExpandedVariants.Processed, r.ExpandedVariants.Created, r.ExpandedVariants.Updated),
		fmt.Sprintf("dyoExpanded %d/%d/%d", r.DYOExpandedVariants.Processed, r.DYOExpandedVariants.Created, r.DYOExpandedVariants.Updated),
		fmt.Sprintf("dyoVariants %d/%d/%d", r.DYOVariants.Processed, r.DYOVariants.Created, r.DYOVariants.Updated),
	}
	return "processed/created/updated: " + strings.Join(parts, ", ")
}

// TotalCreated sums created counts across all sheets.
func (r ImportResults) TotalCreated() int {
	return r.Metals.Created + r.Products.Created + r.VariantSummaries.Created +
		r.ExpandedVariants.Created + r.DYOExpandedVariants.Created + r.DYOVariants.Created
}

// TotalWritten sums created and updated counts across all sheets.
func (r ImportResults) TotalWritten() int {
	return r.TotalCreated() +
		r.Metals.Updated + r.Products.Updated + r.VariantSummaries.Updated +
		r.ExpandedVariants.Updated + r.DYOExpandedVariants.Updated + r.DYOVariants.Updated
}
