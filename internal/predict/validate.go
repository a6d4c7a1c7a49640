package predict

import (
	"fmt"
	"unicode/utf8"
)

// MinTextLength is the shortest synopsis, in characters, that may be submitted.
const MinTextLength = 10

// ReasonTooShort is the only validation failure reason.
const ReasonTooShort = "too_short"

// ValidText is a synopsis that passed Validate.
type ValidText string

// ValidationError rejects a synopsis before it reaches the network.
type ValidationError struct {
	Reason string
	Length int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid synopsis: %s (%d < %d characters)", e.Reason, e.Length, MinTextLength)
}

// Validate checks the raw, untrimmed text length. Whitespace counts.
func Validate(text string) (ValidText, error) {
	n := TextLength(text)
	if n < MinTextLength {
		return "", &ValidationError{Reason: ReasonTooShort, Length: n}
	}
	return ValidText(text), nil
}

// TextLength is the character count shown to the user and used by Validate.
func TextLength(text string) int {
	return utf8.RuneCountInString(text)
}
