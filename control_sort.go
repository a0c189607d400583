// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldapname

import (
	"errors"
	"fmt"
	"strings"

	ber "github.com/go-asn1-ber/asn1-ber"
)

// context tags of a SortKey and a SortResult, https://www.ietf.org/rfc/rfc2891.txt
const (
	sortKeyOrderingRule ber.Tag = 0
	sortKeyReverseOrder ber.Tag = 1
	sortResultAttribute ber.Tag = 0
)

// SortKey is one attribute the server should sort the results by.
type SortKey struct {
	// AttributeType is the attribute to sort by
	AttributeType string
	// MatchingRule is the OID of the ordering rule, empty for the attribute's
	// default ordering. An empty rule is never encoded, and an empty
	// orderingRule element decodes as no rule.
	MatchingRule string
	// Reverse sorts in descending order
	Reverse bool
}

// NewSortKey returns a sort key. attributeType must not be empty.
func NewSortKey(attributeType, matchingRule string, reverse bool) (*SortKey, error) {
	if attributeType == "" {
		return nil, errors.New("ldap: sort key attribute type cannot be empty")
	}
	return &SortKey{AttributeType: attributeType, MatchingRule: matchingRule, Reverse: reverse}, nil
}

func (k *SortKey) String() string {
	var b strings.Builder
	b.WriteString(k.AttributeType)
	if k.MatchingRule != "" {
		b.WriteString(":" + k.MatchingRule)
	}
	if k.Reverse {
		b.WriteString(" (descending)")
	}
	return b.String()
}

func (k *SortKey) encode() *ber.Packet {
	seq := ber.NewSequence("SortKey")
	seq.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, k.AttributeType, "Attribute Type"))
	if k.MatchingRule != "" {
		seq.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, sortKeyOrderingRule, k.MatchingRule, "Ordering Rule"))
	}
	if k.Reverse {
		seq.AppendChild(ber.NewBoolean(ber.ClassContext, ber.TypePrimitive, sortKeyReverseOrder, true, "Reverse Order"))
	}
	return seq
}

// ControlServerSideSorting implements the sort request control described in
// https://www.ietf.org/rfc/rfc2891.txt
type ControlServerSideSorting struct {
	Criticality bool
	SortKeys    []*SortKey
}

// NewControlServerSideSorting returns a sort request control. The keys are
// sent in the given order, the first being the primary key.
func NewControlServerSideSorting(criticality bool, keys ...*SortKey) (*ControlServerSideSorting, error) {
	if len(keys) == 0 {
		return nil, errors.New("ldap: at least one sort key is required")
	}
	c := &ControlServerSideSorting{Criticality: criticality, SortKeys: make([]*SortKey, len(keys))}
	for i, k := range keys {
		if k == nil || k.AttributeType == "" {
			return nil, fmt.Errorf("ldap: sort key %d: attribute type cannot be empty", i)
		}
		key := *k
		c.SortKeys[i] = &key
	}
	return c, nil
}

// NewControlServerSideSortingByAttributes returns a sort request control
// sorting ascending by the given attributes with their default ordering.
func NewControlServerSideSortingByAttributes(criticality bool, attributeTypes ...string) (*ControlServerSideSorting, error) {
	keys := make([]*SortKey, len(attributeTypes))
	for i, attr := range attributeTypes {
		keys[i] = &SortKey{AttributeType: attr}
	}
	return NewControlServerSideSorting(criticality, keys...)
}

// GetControlType returns the OID
func (c *ControlServerSideSorting) GetControlType() string {
	return ControlTypeServerSideSorting
}

// IsCritical returns the criticality
func (c *ControlServerSideSorting) IsCritical() bool {
	return c.Criticality
}

func (c *ControlServerSideSorting) value() *ber.Packet {
	seq := ber.NewSequence("SortKeyList")
	for _, k := range c.SortKeys {
		seq.AppendChild(k.encode())
	}
	return seq
}

// EncodedValue returns the BER encoded sort key list
func (c *ControlServerSideSorting) EncodedValue() []byte {
	return c.value().Bytes()
}

// Encode returns the ber packet representation
func (c *ControlServerSideSorting) Encode() *ber.Packet {
	return encodeControl(ControlTypeServerSideSorting, c.Criticality, c.value())
}

// String returns a human-readable description
func (c *ControlServerSideSorting) String() string {
	keys := make([]string, len(c.SortKeys))
	for i, k := range c.SortKeys {
		keys[i] = k.String()
	}
	return fmt.Sprintf(
		"Control Type: %s (%q)  Criticality: %t  SortKeys: [%s]",
		ControlDescription(ControlTypeServerSideSorting),
		ControlTypeServerSideSorting,
		c.Criticality,
		strings.Join(keys, ", "))
}

// DecodeSortKeys decodes the value of a sort request control.
func DecodeSortKeys(value []byte) ([]*SortKey, error) {
	list, err := decodeValue(ControlTypeServerSideSorting, value)
	if err != nil {
		return nil, err
	}
	list.Description = "SortKeyList"
	if len(list.Children) == 0 {
		return nil, decodeError(ControlTypeServerSideSorting, "empty sort key list")
	}

	keys := make([]*SortKey, 0, len(list.Children))
	for i, seq := range list.Children {
		if seq.ClassType != ber.ClassUniversal || seq.Tag != ber.TagSequence || len(seq.Children) == 0 {
			return nil, decodeError(ControlTypeServerSideSorting, "sort key %d is not a sequence", i)
		}
		seq.Description = "SortKey"
		attr, err := expectChild(ControlTypeServerSideSorting, seq, 0, ber.ClassUniversal, ber.TagOctetString, "Attribute Type")
		if err != nil {
			return nil, err
		}
		key := &SortKey{AttributeType: string(attr.Data.Bytes())}
		if key.AttributeType == "" {
			return nil, decodeError(ControlTypeServerSideSorting, "sort key %d has an empty attribute type", i)
		}

		for _, child := range seq.Children[1:] {
			if child.ClassType != ber.ClassContext || child.TagType != ber.TypePrimitive {
				return nil, decodeError(ControlTypeServerSideSorting, "unexpected element in sort key %d", i)
			}
			switch child.Tag {
			case sortKeyOrderingRule:
				child.Description = "Ordering Rule"
				key.MatchingRule = string(child.Data.Bytes())
			case sortKeyReverseOrder:
				child.Description = "Reverse Order"
				b := child.Data.Bytes()
				if len(b) != 1 {
					return nil, decodeError(ControlTypeServerSideSorting, "invalid boolean in sort key %d", i)
				}
				key.Reverse = b[0] != 0
			default:
				return nil, decodeError(ControlTypeServerSideSorting, "unexpected tag %d in sort key %d", child.Tag, i)
			}
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// ControlServerSideSortingResult is the sort response control returned by
// the server, https://www.ietf.org/rfc/rfc2891.txt
type ControlServerSideSortingResult struct {
	Criticality bool

	resultCode    uint16
	attributeType string
	value         []byte
}

// NewControlServerSideSortingResult decodes the control value sent by the
// server.
func NewControlServerSideSortingResult(criticality bool, value []byte) (*ControlServerSideSortingResult, error) {
	seq, err := decodeValue(ControlTypeServerSideSortingResult, value)
	if err != nil {
		return nil, err
	}
	seq.Description = "SortResult"

	result, err := expectChild(ControlTypeServerSideSortingResult, seq, 0, ber.ClassUniversal, ber.TagEnumerated, "Sort Result")
	if err != nil {
		return nil, err
	}
	code, ok := result.Value.(int64)
	if !ok || code < 0 || code > 0xffff {
		return nil, decodeError(ControlTypeServerSideSortingResult, "invalid sort result code")
	}

	c := &ControlServerSideSortingResult{
		Criticality: criticality,
		resultCode:  uint16(code),
		value:       append([]byte{}, value...),
	}
	switch len(seq.Children) {
	case 1:
	case 2:
		attr, err := expectChild(ControlTypeServerSideSortingResult, seq, 1, ber.ClassContext, sortResultAttribute, "Attribute Type")
		if err != nil {
			return nil, err
		}
		c.attributeType = string(attr.Data.Bytes())
	default:
		return nil, decodeError(ControlTypeServerSideSortingResult, "unexpected trailing elements")
	}
	return c, nil
}

// GetControlType returns the OID
func (c *ControlServerSideSortingResult) GetControlType() string {
	return ControlTypeServerSideSortingResult
}

// IsCritical returns the criticality
func (c *ControlServerSideSortingResult) IsCritical() bool {
	return c.Criticality
}

// ResultCode returns the LDAP result code of the sort operation
func (c *ControlServerSideSortingResult) ResultCode() uint16 {
	return c.resultCode
}

// AttributeType returns the attribute that caused the sort to fail, if the
// server named one
func (c *ControlServerSideSortingResult) AttributeType() string {
	return c.attributeType
}

// IsSorted reports whether the server sorted the results
func (c *ControlServerSideSortingResult) IsSorted() bool {
	return c.resultCode == LDAPResultSuccess
}

// Err returns nil if the results were sorted and an *Error for the result
// code otherwise.
func (c *ControlServerSideSortingResult) Err() error {
	if c.IsSorted() {
		return nil
	}
	msg := "sort failed: " + LDAPResultCodeMap[c.resultCode]
	if c.attributeType != "" {
		msg += " (attribute " + c.attributeType + ")"
	}
	return MapResultCode(c.resultCode, msg)
}

// EncodedValue returns the control value as received
func (c *ControlServerSideSortingResult) EncodedValue() []byte {
	return append([]byte{}, c.value...)
}

// Encode returns the ber packet representation
func (c *ControlServerSideSortingResult) Encode() *ber.Packet {
	return encodeControl(ControlTypeServerSideSortingResult, c.Criticality, ber.DecodePacket(c.value))
}

// String returns a human-readable description
func (c *ControlServerSideSortingResult) String() string {
	return fmt.Sprintf(
		"Control Type: %s (%q)  Criticality: %t  ResultCode: %d (%s)  AttributeType: %q",
		ControlDescription(ControlTypeServerSideSortingResult),
		ControlTypeServerSideSortingResult,
		c.Criticality,
		c.resultCode,
		LDAPResultCodeMap[c.resultCode],
		c.attributeType)
}
