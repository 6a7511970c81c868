package ticket

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrCodeIsNotConstructed is returned for the zero Code.
	ErrCodeIsNotConstructed = errors.New("Code must be created via NewCode or ParseCode")

	codePattern = regexp.MustCompile(`^TKT-(\d{4})-(\d{3,})$`)
)

// Code is the human readable ticket identifier, TKT-<year>-<sequence>, with
// the sequence zero padded to at least three digits.
type Code struct {
	year     int
	sequence int64
}

// NewCode builds a code from a year and a positive per-year sequence number.
func NewCode(year int, sequence int64) (Code, error) {
	if year < 1000 || year > 9999 {
		return Code{}, fmt.Errorf("ticket code year %d must have four digits", year)
	}
	if sequence <= 0 {
		return Code{}, fmt.Errorf("ticket code sequence %d is not greater than 0", sequence)
	}
	return Code{year: year, sequence: sequence}, nil
}

// ParseCode parses the textual form produced by String.
func ParseCode(s string) (Code, error) {
	m := codePattern.FindStringSubmatch(s)
	if m == nil {
		return Code{}, fmt.Errorf("%q is not a ticket code", s)
	}
	year, _ := strconv.Atoi(m[1])
	sequence, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Code{}, fmt.Errorf("%q is not a ticket code: %w", s, err)
	}
	return NewCode(year, sequence)
}

func (c Code) Year() int       { return c.year }
func (c Code) Sequence() int64 { return c.sequence }

// String returns TKT-<year>-<sequence>.
func (c Code) String() string {
	return fmt.Sprintf("TKT-%d-%03d", c.year, c.sequence)
}

// Validate rejects the zero Code.
func (c Code) Validate() error {
	if c.sequence <= 0 {
		return ErrCodeIsNotConstructed
	}
	return nil
}
