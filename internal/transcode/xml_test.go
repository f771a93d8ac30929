package transcode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

func TestMarshalDirectory(t *testing.T) {
	out, err := MarshalDirectory([]domain.Entry{
		{Name: "Alice", Telephone: "+31611111111"},
		{Name: "Bob & Co", Telephone: "0502222222"},
	})
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<?xml"), "missing xml declaration: %q", s)
	assert.Contains(t, s, "<YealinkIPPhoneDirectory>")
	assert.Contains(t, s, "<Name>Alice</Name>")
	assert.Contains(t, s, "<Telephone>+31611111111</Telephone>")
	// XML escaping must apply to entry text.
	assert.Contains(t, s, "Bob &amp; Co")
}

func TestMarshalDirectory_Empty(t *testing.T) {
	out, err := MarshalDirectory(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "YealinkIPPhoneDirectory")
	assert.NotContains(t, string(out), "DirectoryEntry")
}

func TestMarshalMenu(t *testing.T) {
	out, err := MarshalMenu([]MenuItem{
		{Name: "All", URL: "/phonebook/all.xml"},
		{Name: "Practices", URL: "/phonebook/practices.xml"},
		{Name: "Suppliers", URL: "/phonebook/suppliers.xml"},
	})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "<YealinkIPPhoneDirectory>")
	assert.Contains(t, s, "<MenuItem>")
	assert.Contains(t, s, "<URL>/phonebook/practices.xml</URL>")
}

func TestParseDirectoryXML_Yealink(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<YealinkIPPhoneDirectory>
  <DirectoryEntry>
    <Name>Alice</Name>
    <Telephone>+31611111111</Telephone>
  </DirectoryEntry>
  <DirectoryEntry>
    <Name>Bob</Name>
    <Telephone>0502222222</Telephone>
  </DirectoryEntry>
</YealinkIPPhoneDirectory>`

	entries, err := ParseDirectoryXML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.Entry{Name: "Alice", Telephone: "+31611111111"}, entries[0])
	assert.Equal(t, domain.Entry{Name: "Bob", Telephone: "0502222222"}, entries[1])
}

func TestParseDirectoryXML_LegacyFallback(t *testing.T) {
	doc := `<Directory>
  <Unit Name="Front Desk" Phone1="100"/>
  <Unit Name="Pharmacy" Phone1="101"/>
</Directory>`

	entries, err := ParseDirectoryXML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.Entry{Name: "Front Desk", Telephone: "100"}, entries[0])
	assert.Equal(t, domain.Entry{Name: "Pharmacy", Telephone: "101"}, entries[1])
}

func TestParseDirectoryXML_LegacyNestedRoot(t *testing.T) {
	doc := `<IPPhoneDirectory>
  <Directory>
    <Unit Name="Front Desk" Phone1="100"/>
    <Unit Name="Pharmacy" Phone1="101"/>
  </Directory>
</IPPhoneDirectory>`

	entries, err := ParseDirectoryXML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.Entry{Name: "Front Desk", Telephone: "100"}, entries[0])
	assert.Equal(t, domain.Entry{Name: "Pharmacy", Telephone: "101"}, entries[1])
}

func TestParseDirectoryXML_EmptyDocument(t *testing.T) {
	entries, err := ParseDirectoryXML(strings.NewReader("<YealinkIPPhoneDirectory></YealinkIPPhoneDirectory>"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseDirectoryXML_Invalid(t *testing.T) {
	_, err := ParseDirectoryXML(strings.NewReader("not xml at all"))
	assert.Error(t, err)
}

func TestDirectoryXML_RoundTrip(t *testing.T) {
	want := []domain.Entry{
		{Name: "Dierenkliniek Noord", Telephone: "+31 50 1234567"},
		{Name: "VetSupplies", Telephone: "0502222222"},
	}

	out, err := MarshalDirectory(want)
	require.NoError(t, err)

	got, err := ParseDirectoryXML(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
