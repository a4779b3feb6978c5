package models

import (
	"fmt"
)

// MaxOptions is the number of options that can be lettered A through Z.
const MaxOptions = 26

// OptionLetter maps a zero-based option index to its letter.
func OptionLetter(index int) (string, error) {
	if index < 0 || index >= MaxOptions {
		return "", fmt.Errorf("%w: option index %d has no letter", ErrInvalidQuestion, index)
	}
	return string(rune('A' + index)), nil
}
