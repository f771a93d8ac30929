// Package transcode converts contact entries between the wire formats
// the phonebook speaks: Yealink directory XML, CSV, and vCard 3.0.
// Parsers return raw entries; validation belongs to the caller.
package transcode

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// MenuItem is one entry of the phone's top-level directory menu.
type MenuItem struct {
	Name string
	URL  string
}

type directoryEntryXML struct {
	Name      string `xml:"Name"`
	Telephone string `xml:"Telephone"`
}

type directoryXML struct {
	XMLName xml.Name            `xml:"YealinkIPPhoneDirectory"`
	Entries []directoryEntryXML `xml:"DirectoryEntry"`
}

type menuItemXML struct {
	Name string `xml:"Name"`
	URL  string `xml:"URL"`
}

type menuXML struct {
	XMLName xml.Name      `xml:"YealinkIPPhoneDirectory"`
	Items   []menuItemXML `xml:"MenuItem"`
}

// Legacy dialect: <Unit Name="..." Phone1="..."/> elements inside a
// Directory element, which is either the document root or a child of
// an arbitrary root wrapper.
type legacyUnitXML struct {
	Name   string `xml:"Name,attr"`
	Phone1 string `xml:"Phone1,attr"`
}

type legacyDirectoryXML struct {
	Units  []legacyUnitXML `xml:"Unit"`
	Nested []legacyUnitXML `xml:"Directory>Unit"`
}

func (d legacyDirectoryXML) units() []legacyUnitXML {
	return append(d.Units, d.Nested...)
}

// ParseDirectoryXML reads directory XML into entries. It speaks the
// Yealink dialect (DirectoryEntry with Name/Telephone children) and
// falls back to the legacy attribute dialect (Directory/Unit with
// Name/Phone1 attributes) only when the Yealink parse yields nothing.
func ParseDirectoryXML(r io.Reader) ([]domain.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read directory xml: %w", err)
	}

	var dir directoryXML
	dirErr := xml.Unmarshal(data, &dir)
	if dirErr == nil && len(dir.Entries) > 0 {
		entries := make([]domain.Entry, 0, len(dir.Entries))
		for _, e := range dir.Entries {
			entries = append(entries, domain.Entry{Name: e.Name, Telephone: e.Telephone})
		}
		return entries, nil
	}

	var legacy legacyDirectoryXML
	legacyErr := xml.Unmarshal(data, &legacy)
	if units := legacy.units(); legacyErr == nil && len(units) > 0 {
		entries := make([]domain.Entry, 0, len(units))
		for _, u := range units {
			entries = append(entries, domain.Entry{Name: u.Name, Telephone: u.Phone1})
		}
		return entries, nil
	}

	// Either dialect with zero entries is still a valid document.
	if dirErr != nil && legacyErr != nil {
		return nil, fmt.Errorf("parse directory xml: %w", dirErr)
	}
	return nil, nil
}

// MarshalDirectory renders entries as Yealink directory XML with an
// XML declaration, the exact document the phones poll for.
func MarshalDirectory(entries []domain.Entry) ([]byte, error) {
	dir := directoryXML{}
	for _, e := range entries {
		dir.Entries = append(dir.Entries, directoryEntryXML{
			Name:      e.Name,
			Telephone: e.Telephone,
		})
	}
	return marshalWithHeader(dir)
}

// MarshalMenu renders the top-level menu document that links the phone
// to the per-category feeds.
func MarshalMenu(items []MenuItem) ([]byte, error) {
	menu := menuXML{}
	for _, it := range items {
		menu.Items = append(menu.Items, menuItemXML{Name: it.Name, URL: it.URL})
	}
	return marshalWithHeader(menu)
}

func marshalWithHeader(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal directory xml: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
