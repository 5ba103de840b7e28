package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentBlockUnmarshalKnownTypes(t *testing.T) {
	raw := `{"id":"b1","type":"header","data":{"text":"Intro","level":2}}`

	var block ContentBlock
	require.NoError(t, json.Unmarshal([]byte(raw), &block))

	assert.Equal(t, "b1", block.ID)
	assert.Equal(t, BlockHeader, block.Type)
	assert.Equal(t, HeaderData{Text: "Intro", Level: 2}, block.Data)
}

func TestContentBlockUnmarshalUnknownTypeDegrades(t *testing.T) {
	raw := `{"id":"b1","type":"embed","data":{"service":"youtube"}}`

	var block ContentBlock
	require.NoError(t, json.Unmarshal([]byte(raw), &block))

	assert.Equal(t, BlockType("embed"), block.Type)
	assert.Nil(t, block.Data)
}

func TestContentBlockUnmarshalMismatchedPayloadDegrades(t *testing.T) {
	// a list payload where items is not an array decodes to a nil Data
	raw := `{"id":"b2","type":"list","data":{"style":"ordered","items":"not-a-list"}}`

	var block ContentBlock
	require.NoError(t, json.Unmarshal([]byte(raw), &block))

	assert.Equal(t, BlockList, block.Type)
	assert.Nil(t, block.Data)
}

func TestContentBlockUnmarshalMissingData(t *testing.T) {
	raw := `{"id":"b3","type":"delimiter"}`

	var block ContentBlock
	require.NoError(t, json.Unmarshal([]byte(raw), &block))

	assert.Equal(t, DelimiterData{}, block.Data)
}

func TestBlockDocumentRoundTrip(t *testing.T) {
	doc := BlockDocument{Blocks: []ContentBlock{
		{ID: "b1", Type: BlockParagraph, Data: ParagraphData{Text: "hello"}},
		{ID: "b2", Type: BlockCode, Data: CodeData{Code: "x := 1", Language: "go"}},
	}}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded BlockDocument
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, doc, decoded)
}

func TestBlockDocumentPreservesOrder(t *testing.T) {
	raw := `{"blocks":[
        {"id":"b1","type":"paragraph","data":{"text":"one"}},
        {"id":"b2","type":"paragraph","data":{"text":"two"}},
        {"id":"b3","type":"paragraph","data":{"text":"three"}}
    ]}`

	var doc BlockDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, "one", doc.Blocks[0].Data.(ParagraphData).Text)
	assert.Equal(t, "two", doc.Blocks[1].Data.(ParagraphData).Text)
	assert.Equal(t, "three", doc.Blocks[2].Data.(ParagraphData).Text)
}

func TestBlockDocumentIsEmpty(t *testing.T) {
	assert.True(t, BlockDocument{}.IsEmpty())
	assert.False(t, BlockDocument{Blocks: []ContentBlock{{ID: "b1", Type: BlockDelimiter, Data: DelimiterData{}}}}.IsEmpty())
}
