package valueobject

import (
	"regexp"
	"strings"
)

// Address is a value object representing a US-style shipping address
// It is immutable - construct a new value to change it
type Address struct {
	line  string
	city  string
	state string
	zip   string
}

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// NewAddress creates a new Address. The street line is required; the
// remaining fields are optional but validated when present.
func NewAddress(line, city, state, zip string) (Address, error) {
	line = strings.TrimSpace(line)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	zip = strings.TrimSpace(zip)

	if line == "" {
		return Address{}, &validationError{"street address is required"}
	}
	if len(line) > 500 {
		return Address{}, &validationError{"street address cannot exceed 500 characters"}
	}
	if len(city) > 100 {
		return Address{}, &validationError{"city cannot exceed 100 characters"}
	}
	if len(state) > 100 {
		return Address{}, &validationError{"state cannot exceed 100 characters"}
	}
	if zip != "" && !zipPattern.MatchString(zip) {
		return Address{}, &validationError{"invalid zip code format"}
	}

	return Address{line: line, city: city, state: state, zip: zip}, nil
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}

// Line returns the street address line
func (a Address) Line() string {
	return a.line
}

// City returns the city
func (a Address) City() string {
	return a.city
}

// State returns the state
func (a Address) State() string {
	return a.state
}

// Zip returns the zip code
func (a Address) Zip() string {
	return a.zip
}

// IsZero returns true when no address was provided
func (a Address) IsZero() bool {
	return a.line == "" && a.city == "" && a.state == "" && a.zip == ""
}

// String returns a single-line representation
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.line, a.city, a.state, a.zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
