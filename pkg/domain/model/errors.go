package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Storage and validation errors
var (
	ErrStorageRead      = goerr.New("failed to read storage")
	ErrStorageWrite     = goerr.New("failed to write storage")
	ErrSchemaMismatch   = goerr.New("persisted data has an unexpected shape")
	ErrInvalidIndex     = goerr.New("index out of range")
	ErrNotFound         = goerr.New("not found")
	ErrImportValidation = goerr.New("workbook is missing required sheets or columns")
	ErrDuplicateObject  = goerr.New("duplicate auditable object description")
	ErrInvalidCategory  = goerr.New("invalid category")
	ErrInvalidWeight    = goerr.New("weight must be a positive integer")
	ErrInvalidTier      = goerr.New("invalid risk tier")
	ErrInvalidCriterion = goerr.New("invalid criterion")
	ErrInvalidOption    = goerr.New("invalid option")
)

// Context keys for error values
const (
	CategoryKey    = "category"
	IndexKey       = "index"
	CriterionKey   = "criterion"
	OptionKey      = "option"
	DescriptionKey = "description"
	PathKey        = "path"
)

// ImportIssue is a single missing sheet or missing column found while
// validating a workbook. Column is empty when the whole sheet is missing.
type ImportIssue struct {
	Sheet  string
	Column string
}

// String returns a readable form of the issue
func (i ImportIssue) String() string {
	if i.Column == "" {
		return "missing sheet " + i.Sheet
	}
	return "missing column " + i.Column + " in sheet " + i.Sheet
}

// ImportValidationError aggregates every problem found in a workbook
type ImportValidationError struct {
	Issues []ImportIssue
}

func (e *ImportValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return ErrImportValidation.Error() + ": " + strings.Join(msgs, "; ")
}

// Unwrap makes errors.Is(err, ErrImportValidation) hold
func (e *ImportValidationError) Unwrap() error {
	return ErrImportValidation
}

// HasIssues returns true if there are any validation issues
func (e *ImportValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// AddIssue adds an issue to the result
func (e *ImportValidationError) AddIssue(issue ImportIssue) {
	e.Issues = append(e.Issues, issue)
}
