// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldapname

import (
	"fmt"

	ber "github.com/go-asn1-ber/asn1-ber"
)

// ControlManageDsaIT implements the control described in https://tools.ietf.org/html/rfc3296
// It asks the server to treat referral objects as normal entries. The
// boolean value is the criticality.
type ControlManageDsaIT bool

// NewControlManageDsaIT returns a ControlManageDsaIT control
func NewControlManageDsaIT(criticality bool) ControlManageDsaIT {
	return ControlManageDsaIT(criticality)
}

// GetControlType returns the OID
func (c ControlManageDsaIT) GetControlType() string {
	return ControlTypeManageDsaIT
}

// IsCritical returns the criticality
func (c ControlManageDsaIT) IsCritical() bool {
	return bool(c)
}

// EncodedValue returns nil; the control has no value
func (c ControlManageDsaIT) EncodedValue() []byte {
	return nil
}

// Encode returns the ber packet representation
func (c ControlManageDsaIT) Encode() *ber.Packet {
	return encodeControl(ControlTypeManageDsaIT, bool(c), nil)
}

// String returns a human-readable description
func (c ControlManageDsaIT) String() string {
	return fmt.Sprintf(
		"Control Type: %s (%q)  Criticality: %t",
		ControlDescription(ControlTypeManageDsaIT),
		ControlTypeManageDsaIT,
		bool(c))
}
