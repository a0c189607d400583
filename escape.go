package ldapname

import (
	enchex "encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// characters that must be escaped anywhere in a string value
const escapees = ",=+<>#;\"\\"

// isWhitespace reports the runes trimmed around values: space and
// carriage return.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\r'
}

func isLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// EscapeValue returns the RFC 2253 string form of an attribute value.
func EscapeValue(value Value) string {
	switch v := value.(type) {
	case TextValue:
		return EscapeString(string(v))
	case BinaryValue:
		return EscapeBinary(v)
	default:
		return ""
	}
}

// EscapeString escapes the special characters of a string value as well
// as any leading or trailing whitespace, e.g.
//
//	EscapeString(" Smith, J. ") -> "\ Smith\, J.\ "
//
// Bytes that are not valid UTF-8 are copied unchanged.
func EscapeString(value string) string {
	lead := 0
	for lead < len(value) && isWhitespace(rune(value[lead])) {
		lead++
	}
	trail := len(value) - 1
	for trail >= 0 && isWhitespace(rune(value[trail])) {
		trail--
	}

	var builder strings.Builder
	builder.Grow(2 * len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if i < lead || i > trail || strings.IndexByte(escapees, c) >= 0 {
			builder.WriteByte('\\')
		}
		builder.WriteByte(c)
	}
	return builder.String()
}

// EscapeBinary returns the "#hexpairs" form of a BER encoded value.
func EscapeBinary(value []byte) string {
	return "#" + enchex.EncodeToString(value)
}

// UnescapeValue converts the RFC 2253 string form of an attribute value
// back into a Value. It is the inverse of EscapeValue, but accepts more
// than EscapeValue produces: quoted values, hex escaped UTF-8 octets
// ("\C4\8D") and unescaped surrounding whitespace.
//
// A value starting with '#' is decoded into a BinaryValue.
func UnescapeValue(value string) (Value, error) {
	beg, end := 0, len(value)

	for beg < end && isWhitespace(rune(value[beg])) {
		beg++
	}
	for beg < end && isWhitespace(rune(value[end-1])) {
		end--
	}
	// Put back one trailing whitespace byte if it may have been escaped;
	// whether it is kept is decided after the escapes are resolved.
	if end != len(value) && beg < end && value[end-1] == '\\' {
		end++
	}
	if beg >= end {
		return TextValue(""), nil
	}

	if value[beg] == '#' {
		b, err := decodeHexPairs(value[beg+1 : end])
		if err != nil {
			return nil, formatError(value, value[beg:end], err.Error())
		}
		return BinaryValue(b), nil
	}

	if value[beg] == '"' && value[end-1] == '"' && beg != end-1 {
		beg++
		end--
	}

	var builder strings.Builder
	builder.Grow(end - beg)
	lastEscaped := -1
	for i := beg; i < end; i++ {
		if value[i] != '\\' || i+1 >= end {
			builder.WriteByte(value[i])
			continue
		}
		r, size := utf8.DecodeRuneInString(value[i+1 : end])
		if !isLetterOrDigit(r) {
			builder.WriteString(value[i+1 : i+1+size])
			i += size
			lastEscaped = i
			continue
		}

		octets := utf8Octets(value[i:end])
		if len(octets) == 0 {
			return nil, formatError(value, value[i:end], "improper usage of backslash")
		}
		builder.WriteString(strings.ToValidUTF8(string(octets), string(utf8.RuneError)))
		i += len(octets)*3 - 1
	}

	unescaped := builder.String()
	if n := len(unescaped); n > 0 && isWhitespace(rune(unescaped[n-1])) && lastEscaped != end-1 {
		unescaped = unescaped[:n-1]
	}
	return TextValue(unescaped), nil
}

// decodeHexPairs decodes the part of a binary value after the '#'.
func decodeHexPairs(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, enchex.ErrLength
	}
	out := make([]byte, len(s)/2)
	for i := 0; i+1 < len(s); i += 2 {
		hi, ok := hexDigit(s[i])
		if !ok {
			return nil, enchex.InvalidByteError(s[i])
		}
		lo, ok := hexDigit(s[i+1])
		if !ok {
			return nil, enchex.InvalidByteError(s[i+1])
		}
		out[i/2] = hi<<4 | lo
	}
	return out, nil
}

// utf8Octets collects the run of "\XX" escapes at the start of s. It
// stops at the first escape that is not followed by two hex digits.
func utf8Octets(s string) []byte {
	var octets []byte
	for i := 0; i+2 < len(s) && s[i] == '\\'; i += 3 {
		hi, ok := hexDigit(s[i+1])
		if !ok {
			break
		}
		lo, ok := hexDigit(s[i+2])
		if !ok {
			break
		}
		octets = append(octets, hi<<4|lo)
	}
	return octets
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
