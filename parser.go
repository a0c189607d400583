package ldapname

import (
	"errors"
	"unicode/utf8"
)

// parserState is the cursor over one name being parsed. Every grammar rule
// below advances cur past what it consumed. cur is a byte offset; bytes
// that are not valid UTF-8 are stepped over one at a time and kept.
type parserState struct {
	input string
	cur   int
}

func newParserState(input string) *parserState {
	return &parserState{input: input}
}

func (p *parserState) done() bool {
	return p.cur >= len(p.input)
}

func (p *parserState) peek() rune {
	r, _ := utf8.DecodeRuneInString(p.input[p.cur:])
	return r
}

// next moves past the current rune.
func (p *parserState) next() {
	_, size := utf8.DecodeRuneInString(p.input[p.cur:])
	p.cur += size
}

func (p *parserState) rest() string {
	return p.input[min(p.cur, len(p.input)):]
}

func (p *parserState) fail(fragment, reason string) error {
	return formatError(p.input, fragment, reason)
}

// ParseDN parses an RFC 2253 distinguished name. The RDNs of the result
// are in reverse order of the string: the rightmost RDN is RDNs[0].
//
//	dn, _ := ParseDN("cn=Bob,ou=Sales,dc=example")
//	dn.RDNs -> [dc=example ou=Sales cn=Bob]
//
// The empty string is the empty DN.
func ParseDN(str string) (*DN, error) {
	p := newParserState(str)
	dn := &DN{RDNs: []*RelativeDN{}}
	if p.done() {
		return dn, nil
	}

	rdn, err := parseRDNClause(p)
	if err != nil {
		return nil, err
	}
	dn.RDNs = append(dn.RDNs, rdn)

	for !p.done() {
		if c := p.peek(); c != ',' && c != ';' {
			return nil, p.fail(p.rest(), "unexpected character after RDN")
		}
		p.cur++
		rdn, err := parseRDNClause(p)
		if err != nil {
			return nil, err
		}
		dn.RDNs = append([]*RelativeDN{rdn}, dn.RDNs...)
	}
	return dn, nil
}

// ParseRDN parses a single, possibly multi-valued, RDN such as
// "ou=Sales+cn=Bob". Anything after the RDN is an error.
func ParseRDN(str string) (*RelativeDN, error) {
	p := newParserState(str)
	rdn, err := parseRDNClause(p)
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, p.fail(p.rest(), "unexpected characters after RDN")
	}
	return rdn, nil
}

// parseRDNClause parses "type=value" pairs joined by '+'.
func parseRDNClause(p *parserState) (*RelativeDN, error) {
	var attrs []*AttributeTypeAndValue
	for !p.done() {
		consumeWhitespace(p)
		typ, err := parseAttrType(p)
		if err != nil {
			return nil, err
		}
		consumeWhitespace(p)
		if p.done() || p.peek() != '=' {
			return nil, p.fail(typ, "missing '=' after attribute type")
		}
		p.cur++
		consumeWhitespace(p)
		raw, err := parseAttrValue(p)
		if err != nil {
			return nil, err
		}
		consumeWhitespace(p)

		value, err := UnescapeValue(raw)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				return nil, p.fail(raw, fe.Reason)
			}
			return nil, err
		}
		attrs = append(attrs, newAttributeTypeAndValue(typ, value))

		if p.done() || p.peek() != '+' {
			break
		}
		p.cur++
	}
	if len(attrs) == 0 {
		return nil, p.fail("", "empty RDN")
	}
	return newRelativeDN(attrs), nil
}

func parseAttrType(p *parserState) (string, error) {
	beg := p.cur
	for !p.done() {
		c := p.peek()
		if !isLetterOrDigit(c) && c != '.' && c != '-' && c != ' ' {
			break
		}
		p.next()
	}
	for p.cur > beg && p.input[p.cur-1] == ' ' {
		p.cur--
	}
	if p.cur == beg {
		return "", p.fail(p.rest(), "missing attribute type")
	}
	return p.input[beg:p.cur], nil
}

func parseAttrValue(p *parserState) (string, error) {
	if !p.done() {
		switch p.peek() {
		case '#':
			return parseBinaryAttrValue(p), nil
		case '"':
			return parseQuotedAttrValue(p)
		}
	}
	return parseStringAttrValue(p)
}

// parseBinaryAttrValue returns the '#' and the hex digits following it.
func parseBinaryAttrValue(p *parserState) string {
	beg := p.cur
	p.cur++
	for !p.done() && isLetterOrDigit(p.peek()) {
		p.next()
	}
	return p.input[beg:p.cur]
}

// parseQuotedAttrValue returns the value including its quotes.
func parseQuotedAttrValue(p *parserState) (string, error) {
	beg := p.cur
	p.cur++
	for !p.done() && p.peek() != '"' {
		if p.peek() == '\\' {
			p.cur++
			if p.done() {
				break
			}
		}
		p.next()
	}
	if p.done() {
		return "", p.fail(p.input[beg:], "missing closing quote")
	}
	p.cur++
	return p.input[beg:p.cur], nil
}

// parseStringAttrValue reads up to the next unescaped ',', ';' or '+' and
// drops unescaped trailing whitespace.
func parseStringAttrValue(p *parserState) (string, error) {
	beg := p.cur
	lastEscaped := -1
	for !p.done() && !atTerminator(p) {
		if p.peek() == '\\' {
			p.cur++
			if p.done() {
				return "", p.fail(p.input[beg:], "backslash at end of value")
			}
			lastEscaped = p.cur
		}
		p.next()
	}

	end := p.cur
	for end > beg && isWhitespace(rune(p.input[end-1])) && lastEscaped != end-1 {
		end--
	}
	return p.input[beg:end], nil
}

func consumeWhitespace(p *parserState) {
	for !p.done() && isWhitespace(p.peek()) {
		p.cur++
	}
}

func atTerminator(p *parserState) bool {
	switch p.peek() {
	case ',', ';', '+':
		return true
	}
	return false
}
