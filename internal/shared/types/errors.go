package types

import "errors"

var (
	ErrHeaderMissing     = errors.New("report has no header row at the expected position")
	ErrHeaderLength      = errors.New("report header has an unexpected number of columns")
	ErrHeaderMismatch    = errors.New("report header has an unexpected column")
	ErrMalformedReport   = errors.New("report text is malformed")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyLocation     = errors.New("no file location given")
	ErrNoMappingFile     = errors.New("no mapping file configured")
)
