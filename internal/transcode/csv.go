package transcode

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// ErrMissingHeader is returned when a CSV import lacks the name or
// telephone column.
var ErrMissingHeader = errors.New("csv: missing name or telephone column")

// ParseCSV reads a contact CSV with a header row. The name column may
// be labelled "name" or "Name", telephone "telephone" or "Telephone";
// other columns are ignored. Rows shorter than the header are skipped.
func ParseCSV(r io.Reader) ([]domain.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	nameIdx, telIdx := -1, -1
	for i, col := range header {
		switch col {
		case "name", "Name":
			if nameIdx < 0 {
				nameIdx = i
			}
		case "telephone", "Telephone":
			if telIdx < 0 {
				telIdx = i
			}
		}
	}
	if nameIdx < 0 || telIdx < 0 {
		return nil, ErrMissingHeader
	}

	var entries []domain.Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if nameIdx >= len(record) || telIdx >= len(record) {
			continue
		}
		entries = append(entries, domain.Entry{
			Name:      record[nameIdx],
			Telephone: record[telIdx],
		})
	}

	return entries, nil
}

// WriteCSV renders contacts as "name,telephone,category" lines after a
// header row. Fields are written verbatim, without quoting; consumers
// of this export are the phones' provisioning scripts, which expect
// the plain format.
func WriteCSV(w io.Writer, contacts []domain.Contact) error {
	var buf bytes.Buffer
	buf.WriteString("name,telephone,category\n")
	for _, c := range contacts {
		fmt.Fprintf(&buf, "%s,%s,%s\n", c.Name, c.Telephone, c.Category)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
