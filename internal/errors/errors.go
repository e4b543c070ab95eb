package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound       = errors.New("not found")
	ErrFormat         = errors.New("bad format")
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotInitialized = errors.New("not initialized")
)

// NotInitializedError indicates no pixelpad workspace was found.
type NotInitializedError struct {
	Path string
}

func (e *NotInitializedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("pixelpad not initialized in %s (run 'pixelpad init')", e.Path)
	}
	return "pixelpad not initialized (run 'pixelpad init')"
}

func (e *NotInitializedError) Unwrap() error {
	return ErrNotInitialized
}

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "document", "layer", "palette entry"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// FormatError indicates malformed or unrecognized file data:
// a bad signature, a truncated block stream, an unsupported extension.
type FormatError struct {
	Format string // "ase", "gpl", "save"
	Detail string
}

func (e *FormatError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("invalid %s data: %s", e.Format, e.Detail)
	}
	return e.Detail
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// BoundsError indicates a pixel coordinate outside the canvas.
// Callers normally suppress it; it is never user-visible.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("pixel (%d,%d) outside %dx%d canvas", e.X, e.Y, e.Width, e.Height)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Helper constructors for common cases

func DocumentNotFound(id string) error {
	return &NotFoundError{Resource: "document", ID: id}
}

func LayerNotFound(id string) error {
	return &NotFoundError{Resource: "layer", ID: id}
}

func PaletteEntryNotFound(id string) error {
	return &NotFoundError{Resource: "palette entry", ID: id}
}

func SaveNotFound(name string) error {
	return &NotFoundError{Resource: "save file", ID: name}
}

// NoActiveDocument is returned when an operation targets the active
// document but none is open.
func NoActiveDocument() error {
	return &NotFoundError{Resource: "active document"}
}

func BadFormat(format, detail string) error {
	return &FormatError{Format: format, Detail: detail}
}

func BadFormatf(format, detail string, args ...any) error {
	return &FormatError{Format: format, Detail: fmt.Sprintf(detail, args...)}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsFormat checks if an error is a format error.
func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}

// IsOutOfBounds checks if an error is a bounds error.
func IsOutOfBounds(err error) bool {
	return errors.Is(err, ErrOutOfBounds)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
