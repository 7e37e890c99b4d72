package audio

import (
	"errors"
	"strings"
)

// ErrEmptyText is returned when there is nothing to synthesize
var ErrEmptyText = errors.New("text cannot be empty")

// ValidateText checks that text contains something speakable
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}
