package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionContentRoundTrip(t *testing.T) {
	original := SectionContent{
		Type: ContentTypeActivity,
		Data: &ActivityContent{
			RichText:     RichText{Text: "do the thing", HTML: "<p>do the thing</p>"},
			Instructions: "work in pairs",
			ActivityKind: "group",
		},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded SectionContent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)
}

func TestSectionContentUnknownTypeDegrades(t *testing.T) {
	raw := `{"content_type":"video","data":{"url":"x"}}`

	var decoded SectionContent
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))

	assert.Equal(t, ContentType("video"), decoded.Type)
	assert.Nil(t, decoded.Data)
}

func TestSectionContentRich(t *testing.T) {
	text := NewTextContent(BlockDocument{})
	assert.NotNil(t, text.Rich())

	highlight := SectionContent{Type: ContentTypeHighlight, Data: &HighlightContent{Variant: "warning"}}
	assert.NotNil(t, highlight.Rich())

	quickCheck := SectionContent{Type: ContentTypeQuickCheck, Data: &QuickCheckContent{Question: "2+2?", Answer: "4"}}
	assert.Nil(t, quickCheck.Rich())

	assessment := SectionContent{Type: ContentTypeAssessment, Data: &AssessmentContent{}}
	assert.Nil(t, assessment.Rich())
}

func TestSectionCloneDetachesPayload(t *testing.T) {
	s := NewSection(uuid.New(), "Original")
	s.Content.Rich().Document = BlockDocument{Blocks: []ContentBlock{
		{ID: "b1", Type: BlockParagraph, Data: ParagraphData{Text: "before"}},
	}}
	s.Content.Rich().Text = "before"
	s.KeyPoints = []string{"before"}

	copied := s.Clone()
	copied.Content.Rich().Text = "after"
	copied.Content.Rich().Document.Blocks[0].Data = ParagraphData{Text: "after"}
	copied.KeyPoints[0] = "after"

	assert.Equal(t, "before", s.Content.Rich().Text)
	assert.Equal(t, ParagraphData{Text: "before"}, s.Content.Rich().Document.Blocks[0].Data)
	assert.Equal(t, []string{"before"}, s.KeyPoints)
}

func TestSectionContentCloneQuickCheck(t *testing.T) {
	original := SectionContent{Type: ContentTypeQuickCheck, Data: &QuickCheckContent{
		Question: "2+2?",
		Options:  []string{"3", "4"},
		Answer:   "4",
	}}

	copied := original.Clone()
	copied.Data.(*QuickCheckContent).Options[0] = "5"
	copied.Data.(*QuickCheckContent).Answer = "5"

	assert.Equal(t, []string{"3", "4"}, original.Data.(*QuickCheckContent).Options)
	assert.Equal(t, "4", original.Data.(*QuickCheckContent).Answer)
}

func TestNewSectionDefaults(t *testing.T) {
	moduleID := uuid.New()
	s := NewSection(moduleID, "Warm up")

	assert.Equal(t, moduleID, s.ModuleID)
	assert.Equal(t, "Warm up", s.Title)
	assert.True(t, s.IsRequired)
	assert.Equal(t, 5, s.TimeEstimateMinutes)
	assert.Equal(t, ContentTypeText, s.Content.Type)
	assert.NotNil(t, s.Content.Rich())
	assert.NotNil(t, s.LearningStyleTags)
	assert.NotNil(t, s.InteractiveElements)
	assert.NotNil(t, s.KeyPoints)
}

func TestSectionUpdateApply(t *testing.T) {
	s := NewSection(uuid.New(), "Before")
	s.TimeEstimateMinutes = 10

	title := "After"
	required := false
	update := SectionUpdate{Title: &title, IsRequired: &required}
	update.Apply(&s)

	assert.Equal(t, "After", s.Title)
	assert.False(t, s.IsRequired)
	// untouched fields keep their values
	assert.Equal(t, 10, s.TimeEstimateMinutes)
}

func TestLearningStyles(t *testing.T) {
	for _, style := range AllLearningStyles() {
		assert.True(t, style.Valid())
		info := style.Info()
		assert.NotEmpty(t, info.Icon)
		assert.NotEmpty(t, info.Label)
	}
	assert.False(t, LearningStyle("tactile").Valid())
}
