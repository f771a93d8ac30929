package transcode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

func TestWriteVCard(t *testing.T) {
	var buf bytes.Buffer
	err := WriteVCard(&buf, []domain.Contact{
		{Name: "Alice de Vries", Telephone: "+31611111111"},
	})
	require.NoError(t, err)

	want := "BEGIN:VCARD\n" +
		"VERSION:3.0\n" +
		"N:de Vries;Alice\n" +
		"FN:Alice de Vries\n" +
		"TEL;TYPE=CELL:+31611111111\n" +
		"END:VCARD\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteVCard_SingleToken(t *testing.T) {
	var buf bytes.Buffer
	err := WriteVCard(&buf, []domain.Contact{
		{Name: "Reception", Telephone: "100"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "N:;Reception\n")
	assert.Contains(t, buf.String(), "FN:Reception\n")
}

func TestWriteVCard_MultipleCards(t *testing.T) {
	var buf bytes.Buffer
	err := WriteVCard(&buf, []domain.Contact{
		{Name: "A B", Telephone: "1"},
		{Name: "C D", Telephone: "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(buf.String(), "BEGIN:VCARD"))
	assert.Equal(t, 2, strings.Count(buf.String(), "END:VCARD"))
}
