package ldapname

import (
	"testing"

	ber "github.com/go-asn1-ber/asn1-ber"
)

func FuzzParseDN(f *testing.F) {

	f.Add("*")
	f.Add("cn=Jim\\0Test")
	f.Add("cn=Jim\\0")
	f.Add("DC=example,=net")
	f.Add("o=a+o=B")
	f.Add(`cn="quoted, value";dc=example`)
	f.Add("1.3.6.1.4.1.1466.0=#04024869")

	f.Fuzz(func(t *testing.T, input_data string) {
		dn, err := ParseDN(input_data)
		if err != nil {
			return
		}
		again, err := ParseDN(dn.String())
		if err != nil {
			t.Fatalf("reparsing %q (from %q): %s", dn.String(), input_data, err)
		}
		if !dn.Equal(again) {
			t.Fatalf("%q and %q are not equal", dn.String(), again.String())
		}
	})
}

func FuzzUnescapeValue(f *testing.F) {

	f.Add(`start\d`)
	f.Add(`\`)
	f.Add(`start\--end`)
	f.Add(`start\d0\hh`)
	f.Add(`"quoted"`)
	f.Add("#0102")

	f.Fuzz(func(t *testing.T, input_data string) {
		_, _ = UnescapeValue(input_data)
	})
}

func FuzzEscapeString(f *testing.F) {

	f.Add("test,user")
	f.Add("#test#user#")
	f.Add("\\test\\user\\")
	f.Add("  test user  ")
	f.Add("test\"+,;<>\\-_user")
	f.Add("testΑuser ")
	f.Add("test\xffuser")

	f.Fuzz(func(t *testing.T, input_data string) {
		value, err := UnescapeValue(EscapeString(input_data))
		if err != nil {
			t.Fatalf("unescaping %q: %s", EscapeString(input_data), err)
		}
		if value != TextValue(input_data) {
			t.Fatalf("%q unescaped to %#v", input_data, value)
		}
	})
}

func FuzzDecodeControl(f *testing.F) {

	f.Add(NewControlPaging(20, []byte("abc"), true).Encode().Bytes())
	f.Add(NewControlManageDsaIT(false).Encode().Bytes())
	f.Add([]byte{0x30, 0x07, 0x0a, 0x01, 0x10, 0x80, 0x02, 'c', 'n'})

	f.Fuzz(func(t *testing.T, input_data []byte) {
		packet, err := ber.DecodePacketErr(input_data)
		if err != nil {
			return
		}
		_, _ = DecodeControl(packet)
	})
}
