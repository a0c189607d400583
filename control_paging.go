// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldapname

import (
	"fmt"

	ber "github.com/go-asn1-ber/asn1-ber"
)

// ControlPaging implements the paging control described in https://www.ietf.org/rfc/rfc2696.txt
type ControlPaging struct {
	// PagingSize indicates the page size
	PagingSize uint32
	// Cookie is an opaque value returned by the server to track a paging cursor
	Cookie []byte
	// Criticality indicates if this control is required
	Criticality bool
}

// NewControlPaging returns a paging control. The cookie is nil for the
// first page and the value of the last ControlPagingResponse for the
// following ones.
func NewControlPaging(pagingSize uint32, cookie []byte, criticality bool) *ControlPaging {
	c := &ControlPaging{PagingSize: pagingSize, Criticality: criticality}
	c.SetCookie(cookie)
	return c
}

// GetControlType returns the OID
func (c *ControlPaging) GetControlType() string {
	return ControlTypePaging
}

// IsCritical returns the criticality
func (c *ControlPaging) IsCritical() bool {
	return c.Criticality
}

func (c *ControlPaging) value() *ber.Packet {
	seq := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Search Control Value")
	seq.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(c.PagingSize), "Paging Size"))
	cookie := ber.Encode(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, nil, "Cookie")
	cookie.Value = c.Cookie
	cookie.Data.Write(c.Cookie)
	seq.AppendChild(cookie)
	return seq
}

// EncodedValue returns the BER encoded paging request
func (c *ControlPaging) EncodedValue() []byte {
	return c.value().Bytes()
}

// Encode returns the ber packet representation
func (c *ControlPaging) Encode() *ber.Packet {
	return encodeControl(ControlTypePaging, c.Criticality, c.value())
}

// String returns a human-readable description
func (c *ControlPaging) String() string {
	return fmt.Sprintf(
		"Control Type: %s (%q)  Criticality: %t  PagingSize: %d  Cookie: %q",
		ControlDescription(ControlTypePaging),
		ControlTypePaging,
		c.Criticality,
		c.PagingSize,
		c.Cookie)
}

// SetCookie stores a copy of the given cookie in the paging control
func (c *ControlPaging) SetCookie(cookie []byte) {
	if len(cookie) == 0 {
		c.Cookie = nil
		return
	}
	c.Cookie = append([]byte{}, cookie...)
}

// ControlPagingResponse is the paging control returned by the server with
// each page of results.
type ControlPagingResponse struct {
	Criticality bool

	resultSize int
	cookie     []byte
	value      []byte
}

// NewControlPagingResponse decodes the control value sent by the server.
func NewControlPagingResponse(criticality bool, value []byte) (*ControlPagingResponse, error) {
	seq, err := decodeValue(ControlTypePaging, value)
	if err != nil {
		return nil, err
	}
	seq.Description = "Search Control Value"

	size, err := expectChild(ControlTypePaging, seq, 0, ber.ClassUniversal, ber.TagInteger, "Paging Size")
	if err != nil {
		return nil, err
	}
	n, ok := size.Value.(int64)
	if !ok {
		return nil, decodeError(ControlTypePaging, "paging size is not an integer")
	}
	cookie, err := expectChild(ControlTypePaging, seq, 1, ber.ClassUniversal, ber.TagOctetString, "Cookie")
	if err != nil {
		return nil, err
	}
	if len(seq.Children) > 2 {
		return nil, decodeError(ControlTypePaging, "unexpected trailing elements")
	}

	c := &ControlPagingResponse{
		Criticality: criticality,
		resultSize:  int(n),
		value:       append([]byte{}, value...),
	}
	if b := cookie.Data.Bytes(); len(b) > 0 {
		c.cookie = append([]byte{}, b...)
	}
	return c, nil
}

// GetControlType returns the OID
func (c *ControlPagingResponse) GetControlType() string {
	return ControlTypePaging
}

// IsCritical returns the criticality
func (c *ControlPagingResponse) IsCritical() bool {
	return c.Criticality
}

// ResultSize returns the server's estimate of the total number of entries,
// or 0 if it did not give one.
func (c *ControlPagingResponse) ResultSize() int {
	return c.resultSize
}

// Cookie returns the cookie to send with the next page request. It is nil
// once the last page was returned.
func (c *ControlPagingResponse) Cookie() []byte {
	if c.cookie == nil {
		return nil
	}
	return append([]byte{}, c.cookie...)
}

// EncodedValue returns the control value as received
func (c *ControlPagingResponse) EncodedValue() []byte {
	return append([]byte{}, c.value...)
}

// Encode returns the ber packet representation
func (c *ControlPagingResponse) Encode() *ber.Packet {
	return encodeControl(ControlTypePaging, c.Criticality, ber.DecodePacket(c.value))
}

// String returns a human-readable description
func (c *ControlPagingResponse) String() string {
	return fmt.Sprintf(
		"Control Type: %s (%q)  Criticality: %t  ResultSize: %d  Cookie: %q",
		ControlDescription(ControlTypePaging),
		ControlTypePaging,
		c.Criticality,
		c.resultSize,
		c.cookie)
}
