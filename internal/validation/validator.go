// Package validation checks user input before a request reaches the remote service.
package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Minimum lengths, in characters, after trimming.
const (
	MinTitleLength       = 5
	MinDescriptionLength = 10
)

// Sentinel errors matched with errors.Is.
var (
	ErrMissingInput = errors.New("missing input")
	ErrTooShort     = errors.New("input too short")
)

// Kind identifies a validation failure.
type Kind int

const (
	// MissingInput means neither field carries any text.
	MissingInput Kind = iota + 1
	// TooShort means neither field reaches its minimum length.
	TooShort
)

// ValidationError describes why the input was rejected.
type ValidationError struct {
	Message string
	Kind    Kind
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes the error match ErrMissingInput or ErrTooShort.
func (e *ValidationError) Is(target error) bool {
	switch e.Kind {
	case MissingInput:
		return target == ErrMissingInput
	case TooShort:
		return target == ErrTooShort
	}
	return false
}

// Validate checks a prediction request. The title is optional.
func Validate(title, description string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" && description == "" {
		return &ValidationError{
			Kind:    MissingInput,
			Message: "Veuillez saisir un titre ou une description.",
		}
	}

	if utf8.RuneCountInString(description) < MinDescriptionLength &&
		(title == "" || utf8.RuneCountInString(title) < MinTitleLength) {
		return &ValidationError{
			Kind:    TooShort,
			Message: "Le titre doit avoir au moins 5 caractères ou la description 10 caractères.",
		}
	}

	return nil
}

// ValidateDescription checks a suggestion request, which has no title.
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)

	if description == "" {
		return &ValidationError{
			Kind:    MissingInput,
			Message: "Veuillez saisir une description d'au moins 10 caractères.",
		}
	}

	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return &ValidationError{
			Kind:    TooShort,
			Message: "Veuillez saisir une description d'au moins 10 caractères.",
		}
	}

	return nil
}
