package utils

import (
	"errors"
	"regexp"
)

const MaxDescriptionLength = 500

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ValidateDescription rejects descriptions longer than 500 characters or
// containing anything that looks like an HTML tag.
func ValidateDescription(s string) error {
	if len(s) > MaxDescriptionLength {
		return errors.New("description exceeds 500 characters")
	}
	if htmlTagPattern.MatchString(s) {
		return errors.New("description must not contain HTML")
	}
	return nil
}
