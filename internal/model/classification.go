// Package model defines the core domain models used throughout the application.
package model

// ResultSource indicates where a classification answer came from.
type ResultSource string

const (
	// SourceCorrection means a stored user correction answered the lookup.
	SourceCorrection ResultSource = "CORRECTION"
	// SourceOracle means the external classifier produced a catalog-valid answer.
	SourceOracle ResultSource = "ORACLE"
	// SourceUncategorized means no confident answer exists for the description.
	SourceUncategorized ResultSource = "UNCATEGORIZED"
	// SourceError means classification infrastructure failed.
	SourceError ResultSource = "ERROR"
)

// Sentinel values used in classification results.
const (
	// CategoryUncategorized is the reserved category for "explicitly unknown".
	CategoryUncategorized = "Uncategorized"
	// CategoryError is the category carried by ERROR-classed results.
	CategoryError = "Error"
	// SubcategoryCatalogEmpty marks classification attempted against an empty catalog.
	SubcategoryCatalogEmpty = "CatalogEmpty"
	// SubcategoryOracleUnavailable marks oracle transport, auth, or cancellation failure.
	SubcategoryOracleUnavailable = "OracleUnavailable"
)

// ClassificationResult is the outcome of classifying a single description.
// It is transient: results are never persisted directly, only promoted into
// a CorrectionRecord when the user confirms or corrects them.
type ClassificationResult struct {
	Category    string
	Subcategory string
	Source      ResultSource
}

// Uncategorized returns the canonical "no confident answer" result.
func Uncategorized() ClassificationResult {
	return ClassificationResult{
		Category:    CategoryUncategorized,
		Subcategory: "",
		Source:      SourceUncategorized,
	}
}

// ErrorResult returns an ERROR-classed result with the given subcategory code.
func ErrorResult(subcategory string) ClassificationResult {
	return ClassificationResult{
		Category:    CategoryError,
		Subcategory: subcategory,
		Source:      SourceError,
	}
}

// IsError reports whether the result is ERROR-classed.
func (r ClassificationResult) IsError() bool {
	return r.Source == SourceError
}
