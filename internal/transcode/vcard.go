package transcode

import (
	"bytes"
	"io"
	"strings"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// WriteVCard renders contacts as a vCard 3.0 stream, one card per
// contact. The structured name splits on the first space: the first
// token becomes the given name, the remainder the family name.
func WriteVCard(w io.Writer, contacts []domain.Contact) error {
	var buf bytes.Buffer
	for _, c := range contacts {
		first, last := splitName(c.Name)
		buf.WriteString("BEGIN:VCARD\n")
		buf.WriteString("VERSION:3.0\n")
		buf.WriteString("N:" + last + ";" + first + "\n")
		buf.WriteString("FN:" + c.Name + "\n")
		buf.WriteString("TEL;TYPE=CELL:" + c.Telephone + "\n")
		buf.WriteString("END:VCARD\n")
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func splitName(name string) (first, last string) {
	first, last, found := strings.Cut(name, " ")
	if !found {
		return name, ""
	}
	return first, last
}
