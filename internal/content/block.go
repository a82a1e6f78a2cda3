package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind tags a content block.
type Kind string

const (
	KindPill    Kind = "pill"
	KindHeading Kind = "heading"
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindContent Kind = "content"
	KindEnding  Kind = "ending"
)

// Block is one unit of a project page. Exactly one payload pointer matching
// Kind is set; a block of an unknown kind carries none and renders nothing.
type Block struct {
	Kind Kind

	Pill    *Pill
	Heading *Heading
	Text    *Text
	Image   *ImageBlock
	Content *TwoColumn
	Ending  *Ending

	raw json.RawMessage
}

// Pill is a numbered section label. A non-empty Target names the section
// as a scroll destination.
type Pill struct {
	Number string `json:"number"`
	Label  string `json:"label"`
	Target string `json:"target,omitempty"`
}

// Heading is a bold title with an optional accent line.
type Heading struct {
	Main   string `json:"main"`
	Accent string `json:"accent,omitempty"`
}

// Text is an ordered run of paragraphs and lists.
type Text struct {
	Blocks []TextBlock `json:"blocks"`
}

// ImageBlock is either a single image (Src), a grid of explicit images
// (Images), or Count empty placeholder slots.
type ImageBlock struct {
	Src    string   `json:"src,omitempty"`
	Alt    string   `json:"alt,omitempty"`
	Images []Image  `json:"images,omitempty"`
	Layout string   `json:"layout,omitempty"`
	Count  int      `json:"count,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// TwoColumn places two regions side by side; Reverse swaps their order.
type TwoColumn struct {
	Reverse bool   `json:"reverse,omitempty"`
	Left    Region `json:"left"`
	Right   Region `json:"right"`
}

// Region is one side of a TwoColumn block. Every field is optional.
type Region struct {
	Text         []TextBlock `json:"text,omitempty"`
	Image        *Image      `json:"image,omitempty"`
	Placeholders []Image     `json:"placeholders,omitempty"`
	Iterations   []Iteration `json:"iterations,omitempty"`
}

// Iteration groups design-iteration images under a label with optional
// colored annotation notes.
type Iteration struct {
	Label  string   `json:"label,omitempty"`
	Images []string `json:"images,omitempty"`
	Notes  []Note   `json:"notes,omitempty"`
}

// Note is one colored annotation line.
type Note struct {
	Color string `json:"color,omitempty"`
	Text  string `json:"text"`
}

// Ending is a page's closing line.
type Ending struct {
	Text string `json:"text"`
}

// UnmarshalJSON decodes a block by its "type" field. Unknown types are
// accepted and kept verbatim.
func (b *Block) UnmarshalJSON(data []byte) error {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("content block: %w", err)
	}

	*b = Block{Kind: head.Type}
	var target any
	switch head.Type {
	case KindPill:
		b.Pill = &Pill{}
		target = b.Pill
	case KindHeading:
		b.Heading = &Heading{}
		target = b.Heading
	case KindText:
		b.Text = &Text{}
		target = b.Text
	case KindImage:
		b.Image = &ImageBlock{}
		target = b.Image
	case KindContent:
		b.Content = &TwoColumn{}
		target = b.Content
	case KindEnding:
		b.Ending = &Ending{}
		target = b.Ending
	default:
		b.raw = append(json.RawMessage(nil), data...)
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("content block %q: %w", head.Type, err)
	}
	return nil
}

// MarshalJSON writes the payload with its "type" field.
func (b Block) MarshalJSON() ([]byte, error) {
	var payload any
	switch b.Kind {
	case KindPill:
		payload = b.Pill
	case KindHeading:
		payload = b.Heading
	case KindText:
		payload = b.Text
	case KindImage:
		payload = b.Image
	case KindContent:
		payload = b.Content
	case KindEnding:
		payload = b.Ending
	default:
		if len(b.raw) > 0 {
			return b.raw, nil
		}
		return json.Marshal(map[string]Kind{"type": b.Kind})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	kind, err := json.Marshal(b.Kind)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(kind)
	// body is "null" for a missing payload or an object literal.
	if inner := bytes.TrimSpace(body); len(inner) > 2 && inner[0] == '{' {
		buf.WriteByte(',')
		buf.Write(inner[1:])
		return buf.Bytes(), nil
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
