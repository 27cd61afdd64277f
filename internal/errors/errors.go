package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput        = errors.New("input is empty or contains only whitespace")
	ErrInvalidDocument   = errors.New("invalid resource document")
	ErrMultipleDocuments = errors.New("multiple documents found at the root, only one is allowed")
	ErrFileNotFound      = errors.New("file not found")
	ErrFileEmpty         = errors.New("file is empty")
	ErrNoInput           = errors.New("no input provided: please specify a file with -i or pipe a document to stdin")
	ErrInvalidFilePath   = errors.New("invalid file path")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrRecordNotFound    = errors.New("record not found")
	ErrInvalidLocale     = errors.New("invalid locale identifier")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput       ErrorType = "input"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeDefinition  ErrorType = "definition"
	ErrorTypeBuild       ErrorType = "build"
	ErrorTypeRender      ErrorType = "render"
	ErrorTypeFormat      ErrorType = "format"
	ErrorTypeOutput      ErrorType = "output"
	ErrorTypeTranslation ErrorType = "translation"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError of the same type
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newAppError(t ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return newAppError(ErrorTypeInput, message, err)
}

// NewParsingError creates a new error related to document parsing
func NewParsingError(message string, err error) *AppError {
	return newAppError(ErrorTypeParsing, message, err)
}

// NewDefinitionError creates a new error related to resource definitions
func NewDefinitionError(message string, err error) *AppError {
	return newAppError(ErrorTypeDefinition, message, err)
}

// NewBuildError creates a new error related to building the node tree
func NewBuildError(message string, err error) *AppError {
	return newAppError(ErrorTypeBuild, message, err)
}

// NewRenderError creates a new error related to rendering a node tree
func NewRenderError(message string, err error) *AppError {
	return newAppError(ErrorTypeRender, message, err)
}

// NewFormatError creates a new error related to output formatting
func NewFormatError(message string, err error) *AppError {
	return newAppError(ErrorTypeFormat, message, err)
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return newAppError(ErrorTypeOutput, message, err)
}

// NewTranslationError creates a new error related to translation catalogues
func NewTranslationError(message string, err error) *AppError {
	return newAppError(ErrorTypeTranslation, message, err)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("Document parsing error: %s", appErr.Message)
		case ErrorTypeDefinition:
			return fmt.Sprintf("Resource definition error: %s", appErr.Message)
		case ErrorTypeBuild:
			return fmt.Sprintf("Tree build error: %s", appErr.Message)
		case ErrorTypeRender:
			return fmt.Sprintf("Render error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Output formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeTranslation:
			return fmt.Sprintf("Translation error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Error: The input is empty. Please provide a resource document."
	case errors.Is(err, ErrInvalidDocument):
		return "Error: The input is not a valid resource document. Please check its syntax."
	case errors.Is(err, ErrMultipleDocuments):
		return "Error: Multiple documents found. Please provide a single resource document."
	case errors.Is(err, ErrFileNotFound):
		return "Error: The specified file could not be found. Please check the file path."
	case errors.Is(err, ErrFileEmpty):
		return "Error: The specified file is empty."
	case errors.Is(err, ErrNoInput):
		return "Error: No input provided. Please specify a file with -i or pipe a document to stdin."
	case errors.Is(err, ErrInvalidFilePath):
		return "Error: Invalid file path. Please provide a valid file path."
	case errors.Is(err, ErrUnsupportedFormat):
		return "Error: Unsupported file format. Use .json, .yaml, .yml or .toml files."
	case errors.Is(err, ErrRecordNotFound):
		return "Error: The requested record does not exist in the document."
	case errors.Is(err, ErrInvalidLocale):
		return "Error: A configured locale is not a valid language tag."
	}

	return fmt.Sprintf("Error: %v", err)
}
