package apperror

import "fmt"

// RequestError signals a transport failure or an explicit error payload
// from the completion backend. The backend message is kept verbatim.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func NewRequest(format string, args ...interface{}) *RequestError {
	return &RequestError{Message: fmt.Sprintf(format, args...)}
}

// GenerationParseError signals that the backend returned non-conforming
// JSON for a structured generation task (e.g. a value chain document).
type GenerationParseError struct {
	Message string
	Raw     string
}

func (e *GenerationParseError) Error() string {
	return e.Message
}

func NewGenerationParse(raw string, format string, args ...interface{}) *GenerationParseError {
	return &GenerationParseError{Message: fmt.Sprintf(format, args...), Raw: raw}
}

// ImportParseError signals a malformed import file. Prior state must be
// left untouched by the caller.
type ImportParseError struct {
	Message string
}

func (e *ImportParseError) Error() string {
	return e.Message
}

func NewImportParse(format string, args ...interface{}) *ImportParseError {
	return &ImportParseError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError signals missing required user input or a missing auth
// token. It blocks the triggering action before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
