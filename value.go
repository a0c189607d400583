package ldapname

import (
	"bytes"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Value is an attribute value of an RDN. It is either a TextValue or a
// BinaryValue, the latter coming from the "#hexpairs" form.
type Value interface {
	// String returns the value in escaped RFC 2253 form.
	String() string
	// IsEmpty reports whether the value has no characters or bytes.
	IsEmpty() bool

	canonical() string
	equal(Value) bool
}

// TextValue is a string attribute value.
type TextValue string

// BinaryValue is a BER encoded attribute value.
type BinaryValue []byte

func (v TextValue) String() string { return EscapeString(string(v)) }

func (v TextValue) IsEmpty() bool { return v == "" }

func (v TextValue) canonical() string { return foldUpper(string(v)) }

func (v TextValue) equal(o Value) bool {
	t, ok := o.(TextValue)
	return ok && t == v
}

func (v BinaryValue) String() string { return EscapeBinary(v) }

func (v BinaryValue) IsEmpty() bool { return len(v) == 0 }

func (v BinaryValue) canonical() string { return EscapeBinary(v) }

func (v BinaryValue) equal(o Value) bool {
	b, ok := o.(BinaryValue)
	return ok && bytes.Equal(b, v)
}

// cloneValue returns a copy of v that shares no memory with it.
func cloneValue(v Value) Value {
	if b, ok := v.(BinaryValue); ok {
		return BinaryValue(bytes.Clone(b))
	}
	return v
}

// foldUpper returns the upper-cased form used for case-insensitive
// comparison of types and text values.
func foldUpper(s string) string {
	// a cases.Caser keeps state between calls, so it must not be shared
	return cases.Upper(language.Und).String(s)
}
