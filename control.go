// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldapname

import (
	"bytes"
	"fmt"

	ber "github.com/go-asn1-ber/asn1-ber"
)

const (
	// ControlTypePaging - https://www.ietf.org/rfc/rfc2696.txt
	ControlTypePaging = "1.2.840.113556.1.4.319"
	// ControlTypeServerSideSorting - https://www.ietf.org/rfc/rfc2891.txt
	ControlTypeServerSideSorting = "1.2.840.113556.1.4.473"
	// ControlTypeServerSideSortingResult - https://www.ietf.org/rfc/rfc2891.txt
	ControlTypeServerSideSortingResult = "1.2.840.113556.1.4.474"
	// ControlTypeManageDsaIT - https://tools.ietf.org/html/rfc3296
	ControlTypeManageDsaIT = "2.16.840.1.113730.3.4.2"
)

// ControlTypeMap maps controls to text descriptions
var ControlTypeMap = map[string]string{
	ControlTypePaging:                  "Paging",
	ControlTypeServerSideSorting:       "Server Side Sorting Request",
	ControlTypeServerSideSortingResult: "Server Side Sorting Result",
	ControlTypeManageDsaIT:             "Manage DSA IT",
}

// controlDecoders builds typed controls from the criticality and the raw
// control value of a decoded Control sequence.
var controlDecoders = map[string]func(criticality bool, value []byte) (Control, error){
	ControlTypePaging: func(criticality bool, value []byte) (Control, error) {
		c, err := NewControlPagingResponse(criticality, value)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
	ControlTypeServerSideSorting: func(criticality bool, value []byte) (Control, error) {
		keys, err := DecodeSortKeys(value)
		if err != nil {
			return nil, err
		}
		return &ControlServerSideSorting{Criticality: criticality, SortKeys: keys}, nil
	},
	ControlTypeServerSideSortingResult: func(criticality bool, value []byte) (Control, error) {
		c, err := NewControlServerSideSortingResult(criticality, value)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
	ControlTypeManageDsaIT: func(criticality bool, value []byte) (Control, error) {
		if value != nil {
			return nil, decodeError(ControlTypeManageDsaIT, "unexpected control value")
		}
		return ControlManageDsaIT(criticality), nil
	},
}

// Control defines an interface controls provide to encode and describe themselves
type Control interface {
	// GetControlType returns the OID
	GetControlType() string
	// IsCritical reports whether the server must refuse the operation if it
	// does not support the control
	IsCritical() bool
	// EncodedValue returns the BER encoded control value, or nil if the
	// control has no value
	EncodedValue() []byte
	// Encode returns the ber packet representation
	Encode() *ber.Packet
	// String returns a human-readable description
	String() string
}

// ControlDescription returns the description of a control type, or an empty
// string for unknown types.
func ControlDescription(controlType string) string {
	return ControlTypeMap[controlType]
}

// encodeControl builds the Control SEQUENCE shared by all controls. value is
// the structured control value and may be nil.
func encodeControl(controlType string, criticality bool, value *ber.Packet) *ber.Packet {
	packet := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Control")
	packet.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, controlType, "Control Type ("+ControlDescription(controlType)+")"))
	if criticality {
		packet.AppendChild(ber.NewBoolean(ber.ClassUniversal, ber.TypePrimitive, ber.TagBoolean, criticality, "Criticality"))
	}
	if value != nil {
		p2 := ber.Encode(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, nil, "Control Value ("+ControlDescription(controlType)+")")
		p2.AppendChild(value)
		packet.AppendChild(p2)
	}
	return packet
}

// ControlString implements a control with an opaque value. It is returned
// by DecodeControl for control types without a specific implementation.
type ControlString struct {
	ControlType  string
	Criticality  bool
	ControlValue string
}

// NewControlString returns a generic control
func NewControlString(controlType string, criticality bool, controlValue string) *ControlString {
	return &ControlString{
		ControlType:  controlType,
		Criticality:  criticality,
		ControlValue: controlValue,
	}
}

// GetControlType returns the OID
func (c *ControlString) GetControlType() string {
	return c.ControlType
}

// IsCritical returns the criticality
func (c *ControlString) IsCritical() bool {
	return c.Criticality
}

// EncodedValue returns the control value
func (c *ControlString) EncodedValue() []byte {
	if c.ControlValue == "" {
		return nil
	}
	return []byte(c.ControlValue)
}

// Encode returns the ber packet representation
func (c *ControlString) Encode() *ber.Packet {
	packet := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Control")
	packet.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, c.ControlType, "Control Type ("+ControlDescription(c.ControlType)+")"))
	if c.Criticality {
		packet.AppendChild(ber.NewBoolean(ber.ClassUniversal, ber.TypePrimitive, ber.TagBoolean, c.Criticality, "Criticality"))
	}
	if c.ControlValue != "" {
		packet.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, c.ControlValue, "Control Value"))
	}
	return packet
}

// String returns a human-readable description
func (c *ControlString) String() string {
	return fmt.Sprintf("Control Type: %s (%q)  Criticality: %t  Control Value: %s", ControlDescription(c.ControlType), c.ControlType, c.Criticality, c.ControlValue)
}

// FindControl returns the first control of the given type in the list
// or nil
func FindControl(controls []Control, controlType string) Control {
	for _, c := range controls {
		if c.GetControlType() == controlType {
			return c
		}
	}
	return nil
}

// DecodeControl returns a control read from the given packet. Known control
// types are returned as their specific implementation, others as
// *ControlString. A malformed packet results in a *DecodeError.
func DecodeControl(packet *ber.Packet) (Control, error) {
	if packet == nil {
		return nil, decodeError("", "empty packet")
	}

	var (
		controlType string
		criticality bool
		value       *ber.Packet
		ok          bool
	)

	switch len(packet.Children) {
	case 0:
		return nil, decodeError("", "at least one child is required for control type")
	case 1:
		// just type, no criticality or value
	case 2:
		// Children[1] could be criticality or value (both are optional)
		// duck-type on whether this is a boolean
		if b, isBool := packet.Children[1].Value.(bool); isBool {
			packet.Children[1].Description = "Criticality"
			criticality = b
		} else {
			packet.Children[1].Description = "Control Value"
			value = packet.Children[1]
		}
	case 3:
		packet.Children[1].Description = "Criticality"
		if criticality, ok = packet.Children[1].Value.(bool); !ok {
			return nil, decodeError("", "criticality is not a boolean")
		}
		packet.Children[2].Description = "Control Value"
		value = packet.Children[2]
	default:
		return nil, decodeError("", "more than 3 children is invalid for controls")
	}

	if controlType, ok = packet.Children[0].Value.(string); !ok {
		return nil, decodeError("", "control type is not a string")
	}
	packet.Children[0].Description = "Control Type (" + ControlDescription(controlType) + ")"

	var raw []byte
	if value != nil {
		if value.ClassType != ber.ClassUniversal || value.Tag != ber.TagOctetString {
			return nil, decodeError(controlType, "control value is not an octet string")
		}
		raw = append([]byte{}, value.Data.Bytes()...)
	}

	if decode, found := controlDecoders[controlType]; found {
		return decode(criticality, raw)
	}
	return NewControlString(controlType, criticality, string(raw)), nil
}

// EncodeControls returns the [0] Controls packet of an LDAP message
func EncodeControls(controls []Control) *ber.Packet {
	packet := ber.Encode(ber.ClassContext, ber.TypeConstructed, 0, nil, "Controls")
	for _, control := range controls {
		packet.AppendChild(control.Encode())
	}
	return packet
}

// decodeValue decodes a control value into a universal SEQUENCE.
func decodeValue(controlType string, value []byte) (*ber.Packet, error) {
	if len(value) == 0 {
		return nil, decodeError(controlType, "missing control value")
	}
	r := bytes.NewReader(value)
	packet, err := ber.ReadPacket(r)
	if err != nil {
		return nil, &DecodeError{ControlType: controlType, Err: err}
	}
	if r.Len() != 0 {
		return nil, decodeError(controlType, "%d trailing bytes after control value", r.Len())
	}
	if packet.ClassType != ber.ClassUniversal || packet.TagType != ber.TypeConstructed || packet.Tag != ber.TagSequence {
		return nil, decodeError(controlType, "expected SEQUENCE, got class %d tag %d", packet.ClassType, packet.Tag)
	}
	return packet, nil
}

// expectChild returns the i-th child of packet if it is a primitive with
// the given class and tag.
func expectChild(controlType string, packet *ber.Packet, i int, class ber.Class, tag ber.Tag, name string) (*ber.Packet, error) {
	if i >= len(packet.Children) {
		return nil, decodeError(controlType, "missing %s", name)
	}
	child := packet.Children[i]
	if child.ClassType != class || child.Tag != tag || child.TagType != ber.TypePrimitive {
		return nil, decodeError(controlType, "unexpected tag for %s: class %d tag %d", name, child.ClassType, child.Tag)
	}
	child.Description = name
	return child, nil
}
