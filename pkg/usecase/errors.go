package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	ErrWorkbookUnavailable = goerr.New("workbook service is not configured")
)

// Context keys for error values
const (
	ObjectIDKey     = "object_id"
	OptionIndexKey  = "option_index"
	PresetKey       = "preset"
	WorkbookPathKey = "workbook_path"
)
