package errs

import "fmt"

// Kind categorizes application errors for exit-code mapping and logging.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates a malformed flag or configuration value.
	InvalidInput
	// ConfigMissing indicates the canonical document could not be located.
	ConfigMissing
	// ScanFailed indicates the site root could not be walked.
	ScanFailed
	// ParsingFailed indicates a document could not be parsed as HTML.
	ParsingFailed
	// Timeout indicates an operation exceeded its deadline.
	Timeout
)

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}
