package bhl

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque BHL identifier. The API serializes ids as JSON numbers,
// but ids are only ever compared and printed, so they are kept as text.
type ID string

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Title is a BHL bibliographic title with its scanned items.
type Title struct {
	TitleID   ID     `json:"TitleID"`
	FullTitle string `json:"FullTitle"`
	Items     []Item `json:"Items"`
}

// Item is a single scanned volume. Volume holds the free-text
// enumeration string, e.g. "v.12-14=no.1-6 (1901-1903)".
type Item struct {
	ItemID ID     `json:"ItemID"`
	Volume string `json:"Volume"`
	Year   string `json:"Year"`
	Pages  []Page `json:"Pages"`
	Parts  []Part `json:"Parts"`
}

// Page is the page-level metadata attached to one scanned page.
type Page struct {
	PageID      ID           `json:"PageID"`
	ItemID      ID           `json:"ItemID"`
	Volume      string       `json:"Volume"`
	Issue       string       `json:"Issue"`
	Year        string       `json:"Year"`
	PageNumbers []PageNumber `json:"PageNumbers"`
}

// PageNumber is one printed numbering of a page, e.g. {"Page", "45"} or
// {"Plate", "IV"}.
type PageNumber struct {
	Prefix string `json:"Prefix"`
	Number string `json:"Number"`
}

// Part is a segment (usually an article) defined within an item.
type Part struct {
	PartID      ID           `json:"PartID"`
	ItemID      ID           `json:"ItemID"`
	Title       string       `json:"Title"`
	Genre       string       `json:"Genre"`
	Identifiers []Identifier `json:"Identifiers"`
}

// Identifier returns the value of the named identifier, or "" when the part
// carries no identifier with that name.
func (p Part) Identifier(name string) string {
	for _, ident := range p.Identifiers {
		if ident.IdentifierName == name {
			return ident.IdentifierValue
		}
	}
	return ""
}

// Identifier is an external identifier (DOI, BioStor, ...) attached to a part.
type Identifier struct {
	IdentifierName  string `json:"IdentifierName"`
	IdentifierValue string `json:"IdentifierValue"`
}

// Citation is one candidate returned by the BHL OpenURL resolver.
type Citation struct {
	Genre   string `json:"Genre"`
	Title   string `json:"ATitle"`
	Volume  string `json:"Volume"`
	SPage   string `json:"SPage"`
	EPage   string `json:"EPage"`
	PartURL string `json:"PartUrl"`
}

// OpenURLResponse is the resolver's JSON response.
type OpenURLResponse struct {
	Status    string     `json:"Status"`
	Citations []Citation `json:"citations"`
}

// envelope is the common wrapper around every api3 response.
type envelope[T any] struct {
	Status       string `json:"Status"`
	ErrorMessage string `json:"ErrorMessage"`
	Result       []T    `json:"Result"`
}
