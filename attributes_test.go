package ldapname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes(t *testing.T) {
	attrs := NewAttributes()
	assert.Equal(t, 0, attrs.Len())
	assert.Nil(t, attrs.Get("cn"))

	attrs.Put("cn", TextValue("Bob"))
	attrs.Add("CN", TextValue("Robert"), TextValue("Bob"))
	attrs.Add("mail", TextValue("bob@example.com"))
	require.Equal(t, 2, attrs.Len())
	assert.Equal(t, []string{"cn", "mail"}, attrs.IDs())

	cn := attrs.Get("Cn")
	require.NotNil(t, cn)
	assert.Equal(t, "cn", cn.ID)
	assert.Equal(t, []Value{TextValue("Bob"), TextValue("Robert")}, cn.Values)
	assert.Equal(t, TextValue("Bob"), cn.Get())
	assert.True(t, cn.Contains(TextValue("Robert")))
	assert.False(t, cn.Contains(TextValue("robert")))

	// replacing keeps the position and the first spelling
	attrs.Put("CN", TextValue("Alice"))
	assert.Equal(t, []string{"cn", "mail"}, attrs.IDs())
	assert.Equal(t, []Value{TextValue("Alice")}, attrs.Get("cn").Values)

	assert.True(t, attrs.Remove("MAIL"))
	assert.False(t, attrs.Remove("mail"))
	assert.Equal(t, 1, attrs.Len())
}

func TestAttributesCopies(t *testing.T) {
	attrs := NewAttributes()
	b := []byte{0x01}
	attrs.Put("userCertificate", BinaryValue(b))
	b[0] = 0xff

	got := attrs.Get("usercertificate")
	require.NotNil(t, got)
	assert.Equal(t, BinaryValue{0x01}, got.Get())

	got.Values[0].(BinaryValue)[0] = 0xee
	got.Values = append(got.Values, TextValue("x"))
	assert.Equal(t, []Value{BinaryValue{0x01}}, attrs.All()[0].Values)
}

func TestAttributeGetEmpty(t *testing.T) {
	attr := &Attribute{ID: "cn"}
	assert.Nil(t, attr.Get())
	assert.False(t, attr.Contains(TextValue("")))

	var attrs *Attributes
	assert.Equal(t, 0, attrs.Len())
	assert.Nil(t, attrs.All())
}
