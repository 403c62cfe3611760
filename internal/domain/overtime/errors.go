package overtime

import "errors"

// Overtime domain errors
var (
	// Validation failures surfaced to the uploader
	ErrNoValidData     = errors.New("no valid overtime data found in any sheet, please check the file format")
	ErrNoDataLoaded    = errors.New("no data loaded, upload an overtime workbook first")
	ErrNoFileProvided  = errors.New("no file provided")
	ErrInvalidFileType = errors.New("invalid file type, please upload an .xlsx or .xls file")
)
