package ldapname

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// AttributeTypeAndValue is one "type=value" pair of a RelativeDN. It is
// immutable once created.
type AttributeTypeAndValue struct {
	typ   string
	value Value

	upperType  string
	comparable string
}

func newAttributeTypeAndValue(typ string, value Value) *AttributeTypeAndValue {
	value = cloneValue(value)
	return &AttributeTypeAndValue{
		typ:        typ,
		value:      value,
		upperType:  foldUpper(typ),
		comparable: value.canonical(),
	}
}

// Type returns the attribute type as it was written.
func (a *AttributeTypeAndValue) Type() string {
	return a.typ
}

// Value returns the unescaped attribute value.
func (a *AttributeTypeAndValue) Value() Value {
	return cloneValue(a.value)
}

// Compare orders by type, ignoring case, and then by the canonical form
// of the value.
func (a *AttributeTypeAndValue) Compare(o *AttributeTypeAndValue) int {
	if diff := strings.Compare(a.upperType, o.upperType); diff != 0 {
		return diff
	}
	if a.value.equal(o.value) {
		return 0
	}
	return strings.Compare(a.comparable, o.comparable)
}

// Equal reports whether both have the same type, ignoring case, and the
// same canonical value.
func (a *AttributeTypeAndValue) Equal(o *AttributeTypeAndValue) bool {
	return a.upperType == o.upperType && a.comparable == o.comparable
}

func (a *AttributeTypeAndValue) hash() uint64 {
	return xxhash.Sum64String(a.upperType) + xxhash.Sum64String(a.comparable)
}

func (a *AttributeTypeAndValue) String() string {
	return a.typ + "=" + EscapeValue(a.value)
}

// RelativeDN is one component of a DN, made of one or more attribute
// type and value pairs, e.g. "cn=Bob" or "ou=Sales+cn=Bob".
//
// The pairs are kept sorted so that two RDNs naming the same pairs in a
// different order compare equal. A RelativeDN is immutable and safe for
// concurrent use.
type RelativeDN struct {
	attributes []*AttributeTypeAndValue
}

// newRelativeDN sorts the pairs and stores them. The caller must not keep
// a reference to attrs.
func newRelativeDN(attrs []*AttributeTypeAndValue) *RelativeDN {
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrs[i].Compare(attrs[j]) < 0
	})
	return &RelativeDN{attributes: attrs}
}

// NewRelativeDN returns a single valued RDN. The type and the value must
// not be empty.
func NewRelativeDN(typ string, value Value) (*RelativeDN, error) {
	if value == nil {
		return nil, formatError(typ+"=", "", "value cannot be nil")
	}
	if typ == "" || value.IsEmpty() {
		return nil, formatError(typ+"="+EscapeValue(value), "", "type or value cannot be empty")
	}
	return newRelativeDN([]*AttributeTypeAndValue{newAttributeTypeAndValue(typ, value)}), nil
}

// NewRelativeDNFromAttributes returns an RDN with one pair per attribute,
// using the first value of each attribute.
func NewRelativeDNFromAttributes(attrs *Attributes) (*RelativeDN, error) {
	if attrs.Len() == 0 {
		return nil, formatError("", "", "attributes cannot be empty")
	}
	entries := make([]*AttributeTypeAndValue, 0, attrs.Len())
	for _, attr := range attrs.attrs {
		v := attr.Get()
		if v == nil {
			return nil, formatError(attr.ID+"=", attr.ID, "attribute has no value")
		}
		entries = append(entries, newAttributeTypeAndValue(attr.ID, v))
	}
	return newRelativeDN(entries), nil
}

// Type returns the type of the first pair.
func (r *RelativeDN) Type() string {
	return r.attributes[0].Type()
}

// Value returns the value of the first pair.
func (r *RelativeDN) Value() Value {
	return r.attributes[0].Value()
}

// Len returns the number of pairs.
func (r *RelativeDN) Len() int {
	return len(r.attributes)
}

// Attributes returns the pairs in sorted order.
func (r *RelativeDN) Attributes() []*AttributeTypeAndValue {
	attrs := make([]*AttributeTypeAndValue, len(r.attributes))
	copy(attrs, r.attributes)
	return attrs
}

// ToAttributes returns the pairs as an attribute collection. Pairs sharing
// a type become one multi-valued attribute.
func (r *RelativeDN) ToAttributes() *Attributes {
	attrs := NewAttributes()
	for _, a := range r.attributes {
		attrs.Add(a.typ, a.value)
	}
	return attrs
}

// Clone returns a copy of the RDN
func (r *RelativeDN) Clone() *RelativeDN {
	attrs := make([]*AttributeTypeAndValue, len(r.attributes))
	copy(attrs, r.attributes)
	return &RelativeDN{attributes: attrs}
}

// Compare compares the pairs of both RDNs one by one. If all common pairs
// are equal, the RDN with more pairs is greater.
func (r *RelativeDN) Compare(o *RelativeDN) int {
	n := len(r.attributes)
	if len(o.attributes) < n {
		n = len(o.attributes)
	}
	for i := 0; i < n; i++ {
		if diff := r.attributes[i].Compare(o.attributes[i]); diff != 0 {
			return diff
		}
	}
	return len(r.attributes) - len(o.attributes)
}

// Less reports whether r sorts before o.
func (r *RelativeDN) Less(o *RelativeDN) bool {
	return r.Compare(o) < 0
}

// Equal reports whether both RDNs hold the same pairs. Types and text
// values are compared case-insensitively; the order in which the pairs
// were written does not matter.
func (r *RelativeDN) Equal(o *RelativeDN) bool {
	if len(r.attributes) != len(o.attributes) {
		return false
	}
	for i, a := range r.attributes {
		if !a.Equal(o.attributes[i]) {
			return false
		}
	}
	return true
}

// EqualFold is the same as Equal; values are always compared
// case-insensitively.
func (r *RelativeDN) EqualFold(o *RelativeDN) bool {
	return r.Equal(o)
}

// Hash returns a hash consistent with Equal.
func (r *RelativeDN) Hash() uint64 {
	var h uint64
	for _, a := range r.attributes {
		h += a.hash()
	}
	return h
}

// String returns the RFC 2253 form with the pairs in sorted order, which
// need not be the order they were parsed in.
func (r *RelativeDN) String() string {
	parts := make([]string, len(r.attributes))
	for i, a := range r.attributes {
		parts[i] = a.String()
	}
	return strings.Join(parts, "+")
}
