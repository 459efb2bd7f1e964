// Package eco maps Encyclopaedia of Chess Openings codes ("A00".."E99") onto a
// dense integer key space and builds frequency distributions over it.
package eco

import (
	"fmt"
	"strconv"
)

// Key space layout: one letter family followed by a two digit number.
const (
	FirstLetter = 'A'
	LastLetter  = 'E'
	Letters     = LastLetter - FirstLetter + 1
	Numbers     = 100
	Space       = Letters * Numbers
)

// Code is a well-formed ECO code such as "B20".
type Code string

// Index is the dense position of a Code in [0, Space).
type Index int

// Parse validates s and returns it as a Code.
func Parse(s string) (Code, error) {
	if len(s) != 3 {
		return "", fmt.Errorf("%w: %q", ErrMalformedCode, s)
	}
	if s[0] < FirstLetter || s[0] > LastLetter {
		return "", fmt.Errorf("%w: %q", ErrMalformedCode, s)
	}
	if !isDigit(s[1]) || !isDigit(s[2]) {
		return "", fmt.Errorf("%w: %q", ErrMalformedCode, s)
	}
	return Code(s), nil
}

// Valid reports whether s is a well-formed ECO code.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Family returns the letter family of the code.
func (c Code) Family() byte { return c[0] }

// Index returns the dense index of a well-formed code. Use ToIndex for
// unvalidated input.
func (c Code) Index() Index {
	number := int(c[1]-'0')*10 + int(c[2]-'0')
	return Index(int(c[0]-FirstLetter)*Numbers + number)
}

// String implements fmt.Stringer.
func (c Code) String() string { return string(c) }

// ToIndex parses code and returns (letter - 'A') * 100 + number.
func ToIndex(code string) (Index, error) {
	c, err := Parse(code)
	if err != nil {
		return 0, err
	}
	return c.Index(), nil
}

// FromIndex is the inverse of ToIndex; numbers below 10 are zero padded.
func FromIndex(i Index) (Code, error) {
	if i < 0 || i >= Space {
		return "", fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	letter := byte(FirstLetter + int(i)/Numbers)
	number := int(i) % Numbers
	s := string(letter)
	if number < 10 {
		s += "0"
	}
	return Code(s + strconv.Itoa(number)), nil
}

// Families lists the letter families in order.
func Families() []byte {
	out := make([]byte, 0, Letters)
	for l := byte(FirstLetter); l <= LastLetter; l++ {
		out = append(out, l)
	}
	return out
}
