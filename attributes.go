package ldapname

import "strings"

// Attribute is an attribute ID with one or more values.
type Attribute struct {
	ID     string
	Values []Value
}

// Get returns the first value of the attribute, or nil if it has none.
func (a *Attribute) Get() Value {
	if len(a.Values) == 0 {
		return nil
	}
	return a.Values[0]
}

// Contains reports whether the attribute holds a value equal to v.
func (a *Attribute) Contains(v Value) bool {
	for _, av := range a.Values {
		if av.equal(v) {
			return true
		}
	}
	return false
}

func (a *Attribute) clone() *Attribute {
	c := &Attribute{ID: a.ID, Values: make([]Value, len(a.Values))}
	for i, v := range a.Values {
		c.Values[i] = cloneValue(v)
	}
	return c
}

// Attributes is an ordered collection of attributes. IDs are compared
// case-insensitively; the first spelling of an ID is kept.
type Attributes struct {
	attrs []*Attribute
}

// NewAttributes returns an empty collection.
func NewAttributes() *Attributes {
	return &Attributes{}
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.attrs)
}

func (a *Attributes) index(id string) int {
	for i, attr := range a.attrs {
		if strings.EqualFold(attr.ID, id) {
			return i
		}
	}
	return -1
}

// Get returns a copy of the attribute with the given ID, or nil.
func (a *Attributes) Get(id string) *Attribute {
	if a == nil {
		return nil
	}
	if i := a.index(id); i >= 0 {
		return a.attrs[i].clone()
	}
	return nil
}

// Put sets the values of an attribute, replacing any previous values. A new
// attribute is added at the end.
func (a *Attributes) Put(id string, values ...Value) {
	attr := &Attribute{ID: id}
	for _, v := range values {
		attr.Values = append(attr.Values, cloneValue(v))
	}
	if i := a.index(id); i >= 0 {
		attr.ID = a.attrs[i].ID
		a.attrs[i] = attr
		return
	}
	a.attrs = append(a.attrs, attr)
}

// Add appends values to an attribute, creating it if necessary. Values
// already present are not added twice.
func (a *Attributes) Add(id string, values ...Value) {
	i := a.index(id)
	if i < 0 {
		a.attrs = append(a.attrs, &Attribute{ID: id})
		i = len(a.attrs) - 1
	}
	attr := a.attrs[i]
	for _, v := range values {
		if !attr.Contains(v) {
			attr.Values = append(attr.Values, cloneValue(v))
		}
	}
}

// Remove deletes the attribute with the given ID and reports whether it
// existed.
func (a *Attributes) Remove(id string) bool {
	i := a.index(id)
	if i < 0 {
		return false
	}
	a.attrs = append(a.attrs[:i], a.attrs[i+1:]...)
	return true
}

// IDs returns the attribute IDs in insertion order.
func (a *Attributes) IDs() []string {
	ids := make([]string, 0, a.Len())
	for _, attr := range a.All() {
		ids = append(ids, attr.ID)
	}
	return ids
}

// All returns copies of all attributes in insertion order.
func (a *Attributes) All() []*Attribute {
	if a == nil {
		return nil
	}
	all := make([]*Attribute, len(a.attrs))
	for i, attr := range a.attrs {
		all[i] = attr.clone()
	}
	return all
}
