package content

import (
	"bytes"
	"encoding/json"
)

// TextKind is the shape of one text sub-block.
type TextKind int

const (
	// TextUnknown marks a sub-block whose shape was not recognised.
	TextUnknown TextKind = iota
	TextParagraph
	TextBoldLead
	TextBullets
	TextNumbered
)

// TextBlock is a paragraph, a bold-lead paragraph, or a list.
//
// On disk the shape decides the kind:
//
//	{"p": "..."}                  paragraph
//	{"bold": "...", "p": "..."}   bold lead, optional remainder
//	{"ul": [...]}                 unordered list
//	{"ol": [...]}                 ordered list
type TextBlock struct {
	Kind  TextKind
	Lead  string
	Body  string
	Items []ListItem
}

type textBlockJSON struct {
	P    *string    `json:"p,omitempty"`
	Bold *string    `json:"bold,omitempty"`
	UL   []ListItem `json:"ul,omitempty"`
	OL   []ListItem `json:"ol,omitempty"`
}

// UnmarshalJSON never fails on an unfamiliar shape; it yields TextUnknown.
func (t *TextBlock) UnmarshalJSON(data []byte) error {
	*t = TextBlock{}

	var raw textBlockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	switch {
	case raw.UL != nil:
		t.Kind, t.Items = TextBullets, raw.UL
	case raw.OL != nil:
		t.Kind, t.Items = TextNumbered, raw.OL
	case raw.Bold != nil:
		t.Kind, t.Lead = TextBoldLead, *raw.Bold
		if raw.P != nil {
			t.Body = *raw.P
		}
	case raw.P != nil:
		t.Kind, t.Body = TextParagraph, *raw.P
	}
	return nil
}

func (t TextBlock) MarshalJSON() ([]byte, error) {
	var raw textBlockJSON
	switch t.Kind {
	case TextParagraph:
		raw.P = &t.Body
	case TextBoldLead:
		raw.Bold = &t.Lead
		if t.Body != "" {
			raw.P = &t.Body
		}
	case TextBullets:
		raw.UL = nonNil(t.Items)
	case TextNumbered:
		raw.OL = nonNil(t.Items)
	}
	return json.Marshal(raw)
}

func nonNil(items []ListItem) []ListItem {
	if items == nil {
		return []ListItem{}
	}
	return items
}

// ListItem is a plain string or a bold prefix followed by the rest.
type ListItem struct {
	Bold string `json:"bold,omitempty"`
	Text string `json:"text,omitempty"`
}

// Empty reports whether the item has nothing to show.
func (li ListItem) Empty() bool { return li.Bold == "" && li.Text == "" }

// UnmarshalJSON accepts "text" or {"bold": "...", "text": "..."}. Any other
// shape decodes to an empty item.
func (li *ListItem) UnmarshalJSON(data []byte) error {
	*li = ListItem{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			li.Text = s
		}
	case '{':
		var pair struct {
			Bold string `json:"bold"`
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &pair); err == nil {
			li.Bold, li.Text = pair.Bold, pair.Text
		}
	}
	return nil
}

func (li ListItem) MarshalJSON() ([]byte, error) {
	if li.Bold == "" {
		return json.Marshal(li.Text)
	}
	type pair ListItem
	return json.Marshal(pair(li))
}
