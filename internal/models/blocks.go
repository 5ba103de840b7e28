package models

import (
	"encoding/json"
)

type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeader    BlockType = "header"
	BlockList      BlockType = "list"
	BlockQuote     BlockType = "quote"
	BlockTable     BlockType = "table"
	BlockCode      BlockType = "code"
	BlockImage     BlockType = "image"
	BlockDelimiter BlockType = "delimiter"
)

const (
	ListOrdered   = "ordered"
	ListUnordered = "unordered"
)

// BlockData is the kind-specific payload of a ContentBlock. A nil BlockData
// marks a malformed block: it renders nothing and contributes nothing to any
// derived view.
type BlockData interface {
	blockType() BlockType
}

type ParagraphData struct {
	Text string `json:"text"`
}

type HeaderData struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

type ListData struct {
	Style string   `json:"style"`
	Items []string `json:"items"`
}

type QuoteData struct {
	Text    string `json:"text"`
	Caption string `json:"caption,omitempty"`
}

type TableData struct {
	Headers      []string   `json:"headers"`
	Rows         [][]string `json:"rows"`
	Caption      string     `json:"caption,omitempty"`
	WithHeadings bool       `json:"with_headings,omitempty"`
	Stretched    bool       `json:"stretched,omitempty"`
}

type CodeData struct {
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
}

type ImageData struct {
	// ObjectKey references an uploaded image in object storage. URL is filled
	// in on the read path when the key is resolved to a presigned link.
	ObjectKey string `json:"object_key,omitempty"`
	URL       string `json:"url,omitempty"`
	Caption   string `json:"caption,omitempty"`
}

type DelimiterData struct{}

func (ParagraphData) blockType() BlockType { return BlockParagraph }
func (HeaderData) blockType() BlockType    { return BlockHeader }
func (ListData) blockType() BlockType      { return BlockList }
func (QuoteData) blockType() BlockType     { return BlockQuote }
func (TableData) blockType() BlockType     { return BlockTable }
func (CodeData) blockType() BlockType      { return BlockCode }
func (ImageData) blockType() BlockType     { return BlockImage }
func (DelimiterData) blockType() BlockType { return BlockDelimiter }

// ContentBlock is one atomic unit of rich lesson content. The ID is unique
// within a document and carries no meaning across documents.
type ContentBlock struct {
	ID   string
	Type BlockType
	Data BlockData
}

type blockEnvelope struct {
	ID   string          `json:"id"`
	Type BlockType       `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	env := blockEnvelope{ID: b.ID, Type: b.Type}
	if b.Data != nil {
		data, err := json.Marshal(b.Data)
		if err != nil {
			return nil, err
		}
		env.Data = data
	} else {
		env.Data = json.RawMessage(`{}`)
	}
	return json.Marshal(env)
}

// UnmarshalJSON keys the payload off the declared type. A payload that does
// not match its kind decodes to a nil Data, never to an error.
func (b *ContentBlock) UnmarshalJSON(raw []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	b.ID = env.ID
	b.Type = env.Type
	b.Data = decodeBlockData(env.Type, env.Data)
	return nil
}

func decodeBlockData(t BlockType, raw json.RawMessage) BlockData {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	switch t {
	case BlockParagraph:
		var d ParagraphData
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return d
	case BlockHeader:
		var d HeaderData
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return d
	case BlockList:
		var d ListData
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return d
	case BlockQuote:
		var d QuoteData
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return d
	case BlockTable:
		var d TableData
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return d
	case BlockCode:
		var d CodeData
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return d
	case BlockImage:
		var d ImageData
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return d
	case BlockDelimiter:
		return DelimiterData{}
	}
	return nil
}

// BlockDocument is an ordered sequence of blocks. Order is significant and
// preserved across every conversion. The document is always replaced
// wholesale on edit, never patched.
type BlockDocument struct {
	Blocks []ContentBlock `json:"blocks"`
}

func (d BlockDocument) IsEmpty() bool {
	return len(d.Blocks) == 0
}
