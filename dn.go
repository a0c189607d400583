package ldapname

import (
	"strings"
)

// DN is a distinguished name. RDNs[0] is the rightmost RDN of the string
// form, the one closest to the root of the tree; the last element is the
// most specific RDN.
type DN struct {
	RDNs []*RelativeDN
}

// String returns the RFC 2253 form of the DN, most specific RDN first.
func (dn *DN) String() string {
	rdns := make([]string, len(dn.RDNs))
	for i, r := range dn.RDNs {
		rdns[len(dn.RDNs)-1-i] = r.String()
	}
	return strings.Join(rdns, ",")
}

// Len returns the number of RDNs.
func (dn *DN) Len() int {
	return len(dn.RDNs)
}

// Get returns the RDN at index i, counted from the root.
func (dn *DN) Get(i int) *RelativeDN {
	return dn.RDNs[i]
}

// Equal checks if all RDNs of both DNs are equal
func (dn *DN) Equal(other *DN) bool {
	if len(dn.RDNs) != len(other.RDNs) {
		return false
	}
	for i, rdn := range dn.RDNs {
		if !rdn.Equal(other.RDNs[i]) {
			return false
		}
	}
	return true
}

// EqualFold is the same as Equal.
func (dn *DN) EqualFold(other *DN) bool {
	return dn.Equal(other)
}

// Compare compares the RDNs from the root downwards. If all common RDNs
// are equal, the longer DN is greater.
func (dn *DN) Compare(other *DN) int {
	n := len(dn.RDNs)
	if len(other.RDNs) < n {
		n = len(other.RDNs)
	}
	for i := 0; i < n; i++ {
		if diff := dn.RDNs[i].Compare(other.RDNs[i]); diff != 0 {
			return diff
		}
	}
	return len(dn.RDNs) - len(other.RDNs)
}

// Less reports whether dn sorts before other in Compare order.
func (dn *DN) Less(other *DN) bool {
	return dn.Compare(other) < 0
}

// Prefix returns a DN of the first n RDNs, counted from the root
func (dn *DN) Prefix(n int) *DN {
	return &DN{RDNs: append([]*RelativeDN{}, dn.RDNs[:n]...)}
}

// Suffix returns a DN of the RDNs from index n on
func (dn *DN) Suffix(n int) *DN {
	return &DN{RDNs: append([]*RelativeDN{}, dn.RDNs[n:]...)}
}

// StartsWith reports whether prefix names the first RDNs of dn, e.g.
// "cn=Bob,dc=example" starts with "dc=example".
func (dn *DN) StartsWith(prefix *DN) bool {
	return len(dn.RDNs) >= len(prefix.RDNs) && matchRDNs(dn.RDNs[:len(prefix.RDNs)], prefix.RDNs)
}

// EndsWith reports whether suffix names the last RDNs of dn, e.g.
// "cn=Bob,dc=example" ends with "cn=Bob".
func (dn *DN) EndsWith(suffix *DN) bool {
	return len(dn.RDNs) >= len(suffix.RDNs) && matchRDNs(dn.RDNs[len(dn.RDNs)-len(suffix.RDNs):], suffix.RDNs)
}

func matchRDNs(a, b []*RelativeDN) bool {
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// IsSubordinate returns true if the "other" DN is a parent of "dn"
func (dn *DN) IsSubordinate(other *DN) bool {
	return len(dn.RDNs) > len(other.RDNs) && dn.StartsWith(other)
}

// AncestorOf returns true if the other DN consists of at least one RDN
// followed by all the RDNs of the current DN.
func (dn *DN) AncestorOf(other *DN) bool {
	return other.IsSubordinate(dn)
}

// Append adds the "other" DN below "dn", e.g.
//
//	dn, err := ParseDN("ou=people,dc=example,dc=org")
//	rel, err := ParseDN("CN=Someone")
//	dn.Append(rel) -> "CN=Someone,ou=people,dc=example,dc=org"
func (dn *DN) Append(other *DN) {
	rdns := make([]*RelativeDN, 0, len(dn.RDNs)+len(other.RDNs))
	rdns = append(rdns, dn.RDNs...)
	dn.RDNs = append(rdns, other.RDNs...)
}

// Strip removes the "base" DN from the "dn", e.g.
//
//	dn, err := ParseDN("cn=Someone,ou=people,dc=example,dc=org")
//	base, err := ParseDN("ou=people,dc=example,dc=org")
//	dn.Strip(base) -> "cn=Someone"
//
// Note: the "base" DN must be a parent of the "dn"
func (dn *DN) Strip(base *DN) error {
	if !dn.IsSubordinate(base) {
		return ErrDNNotSubordinate
	}
	dn.RDNs = append([]*RelativeDN{}, dn.RDNs[len(base.RDNs):]...)
	return nil
}

// Rename replaces the most specific RDN with the given one. Renaming the
// empty DN makes rdn its only RDN.
func (dn *DN) Rename(rdn *RelativeDN) {
	if len(dn.RDNs) == 0 {
		dn.RDNs = []*RelativeDN{rdn}
		return
	}
	rdns := append([]*RelativeDN{}, dn.RDNs...)
	rdns[len(rdns)-1] = rdn
	dn.RDNs = rdns
}

// Move keeps the most specific RDN and places it below newBase. The empty
// DN has no RDN to move and is left unchanged.
func (dn *DN) Move(newBase *DN) {
	if len(dn.RDNs) == 0 {
		return
	}
	rdn := dn.RDNs[len(dn.RDNs)-1]
	rdns := make([]*RelativeDN, 0, len(newBase.RDNs)+1)
	rdns = append(rdns, newBase.RDNs...)
	dn.RDNs = append(rdns, rdn)
}

// RDN returns the value of the most specific RDN, e.g.
//
//	dn, err := ParseDN("uid=someone,ou=people,dc=example,dc=org")
//	dn.RDN() -> "someone"
//
// Binary values are returned in their "#hexpairs" form.
func (dn *DN) RDN() string {
	if len(dn.RDNs) == 0 {
		return ""
	}
	switch v := dn.RDNs[len(dn.RDNs)-1].Value().(type) {
	case TextValue:
		return string(v)
	default:
		return EscapeValue(v)
	}
}

// Parent returns the parent of the "dn" as a cloned *DN
func (dn *DN) Parent() *DN {
	if len(dn.RDNs) == 0 {
		return &DN{RDNs: []*RelativeDN{}}
	}
	return dn.Prefix(len(dn.RDNs) - 1)
}

// Clone returns a copy of the DN
func (dn *DN) Clone() *DN {
	c := &DN{RDNs: make([]*RelativeDN, len(dn.RDNs))}
	for i, r := range dn.RDNs {
		c.RDNs[i] = r.Clone()
	}
	return c
}

// DNs sorts DNs from the deepest part of the tree upwards:
//
//	all := []*ldapname.DN{dn1, dn2, dn3, dn4}
//	sort.Sort(ldapname.DNs(all))
//	for _, dn := range all {
//		println(dn.String())
//	}
//
// Every DN comes before its ancestors and siblings are ordered by RDN.
// Searching for all DNs below a base, sorting them and removing them in
// that order removes the whole tree, including the search base.
type DNs []*DN

func (d DNs) Len() int {
	return len(d)
}

func (d DNs) Swap(i, j int) {
	d[i], d[j] = d[j], d[i]
}

func (d DNs) Less(i, j int) bool {
	a, b := d[i].RDNs, d[j].RDNs
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for k := 0; k < n; k++ {
		if diff := a[k].Compare(b[k]); diff != 0 {
			return diff < 0
		}
	}
	return len(a) > len(b)
}
