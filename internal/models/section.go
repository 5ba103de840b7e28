package models

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentTypeText       ContentType = "text"
	ContentTypeActivity   ContentType = "activity"
	ContentTypeAssessment ContentType = "assessment"
	ContentTypeHighlight  ContentType = "highlight"
	ContentTypeQuickCheck ContentType = "quick_check"
)

// RichText bundles an editable BlockDocument with its derived plain-text and
// HTML caches. The caches are recomputed by the editor on every change.
type RichText struct {
	Document BlockDocument `json:"editorjs_data"`
	Text     string        `json:"text"`
	HTML     string        `json:"html"`
}

// ContentData is the kind-specific payload of a section, one variant per
// content type. Variants that embed a RichText are editable in the section
// editor; the others carry structured data only.
type ContentData interface {
	contentType() ContentType
}

type TextContent struct {
	RichText
}

type ActivityContent struct {
	RichText
	Instructions string `json:"instructions,omitempty"`
	ActivityKind string `json:"activity_kind,omitempty"`
}

type HighlightContent struct {
	RichText
	Variant string `json:"variant,omitempty"`
}

type AssessmentContent struct {
	Instructions string `json:"instructions,omitempty"`
}

type QuickCheckContent struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

func (TextContent) contentType() ContentType       { return ContentTypeText }
func (ActivityContent) contentType() ContentType   { return ContentTypeActivity }
func (HighlightContent) contentType() ContentType  { return ContentTypeHighlight }
func (AssessmentContent) contentType() ContentType { return ContentTypeAssessment }
func (QuickCheckContent) contentType() ContentType { return ContentTypeQuickCheck }

// SectionContent is the tagged union stored in a section's content_data
// column. The tag is the content type; exactly one variant is populated.
type SectionContent struct {
	Type ContentType
	Data ContentData
}

func NewTextContent(doc BlockDocument) SectionContent {
	return SectionContent{Type: ContentTypeText, Data: &TextContent{RichText: RichText{Document: doc}}}
}

// Rich returns the embedded RichText for editable content kinds, nil for
// assessment and quick-check sections.
func (c *SectionContent) Rich() *RichText {
	switch d := c.Data.(type) {
	case *TextContent:
		return &d.RichText
	case *ActivityContent:
		return &d.RichText
	case *HighlightContent:
		return &d.RichText
	}
	return nil
}

// Clone returns a deep copy. The variants are pointers, so a plain struct
// copy would share the payload and the embedded document.
func (c SectionContent) Clone() SectionContent {
	switch d := c.Data.(type) {
	case *TextContent:
		copied := *d
		copied.Document.Blocks = slices.Clone(d.Document.Blocks)
		c.Data = &copied
	case *ActivityContent:
		copied := *d
		copied.Document.Blocks = slices.Clone(d.Document.Blocks)
		c.Data = &copied
	case *HighlightContent:
		copied := *d
		copied.Document.Blocks = slices.Clone(d.Document.Blocks)
		c.Data = &copied
	case *AssessmentContent:
		copied := *d
		c.Data = &copied
	case *QuickCheckContent:
		copied := *d
		copied.Options = slices.Clone(d.Options)
		c.Data = &copied
	}
	return c
}

type contentEnvelope struct {
	Type ContentType     `json:"content_type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func (c SectionContent) MarshalJSON() ([]byte, error) {
	env := contentEnvelope{Type: c.Type}
	if c.Data != nil {
		data, err := json.Marshal(c.Data)
		if err != nil {
			return nil, err
		}
		env.Data = data
	} else {
		env.Data = json.RawMessage(`{}`)
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes the variant matching the tag. A payload that does not
// match decodes to a nil Data, mirroring malformed-block handling.
func (c *SectionContent) UnmarshalJSON(raw []byte) error {
	var env contentEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	c.Type = env.Type
	c.Data = decodeContentData(env.Type, env.Data)
	return nil
}

func decodeContentData(t ContentType, raw json.RawMessage) ContentData {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	switch t {
	case ContentTypeText:
		var d TextContent
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return &d
	case ContentTypeActivity:
		var d ActivityContent
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return &d
	case ContentTypeHighlight:
		var d HighlightContent
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return &d
	case ContentTypeAssessment:
		var d AssessmentContent
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return &d
	case ContentTypeQuickCheck:
		var d QuickCheckContent
		if json.Unmarshal(raw, &d) != nil {
			return nil
		}
		return &d
	}
	return nil
}

// ContentSection is one titled, orderable step of a learning module. Position
// defines render order within the module and is kept contiguous by the module
// service.
type ContentSection struct {
	ID                  uuid.UUID       `json:"id"`
	ModuleID            uuid.UUID       `json:"module_id"`
	Title               string          `json:"title"`
	Content             SectionContent  `json:"content_data"`
	Position            int             `json:"position"`
	IsRequired          bool            `json:"is_required"`
	TimeEstimateMinutes int             `json:"time_estimate_minutes"`
	LearningStyleTags   []LearningStyle `json:"learning_style_tags"`
	InteractiveElements []string        `json:"interactive_elements"`
	KeyPoints           []string        `json:"key_points"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func NewSection(moduleID uuid.UUID, title string) ContentSection {
	return ContentSection{
		ID:                  uuid.New(),
		ModuleID:            moduleID,
		Title:               title,
		Content:             NewTextContent(BlockDocument{}),
		IsRequired:          true,
		TimeEstimateMinutes: 5,
		LearningStyleTags:   []LearningStyle{},
		InteractiveElements: []string{},
		KeyPoints:           []string{},
	}
}

// Clone returns a deep copy of the section, content payload included.
func (s ContentSection) Clone() ContentSection {
	s.Content = s.Content.Clone()
	s.LearningStyleTags = slices.Clone(s.LearningStyleTags)
	s.InteractiveElements = slices.Clone(s.InteractiveElements)
	s.KeyPoints = slices.Clone(s.KeyPoints)
	return s
}

// SectionUpdate is a partial update applied on save. Nil fields keep the
// current value.
type SectionUpdate struct {
	Title               *string          `json:"title,omitempty"`
	Content             *SectionContent  `json:"content_data,omitempty"`
	IsRequired          *bool            `json:"is_required,omitempty"`
	TimeEstimateMinutes *int             `json:"time_estimate_minutes,omitempty"`
	LearningStyleTags   *[]LearningStyle `json:"learning_style_tags,omitempty"`
	InteractiveElements *[]string        `json:"interactive_elements,omitempty"`
	KeyPoints           *[]string        `json:"key_points,omitempty"`
}

// Apply merges the update into the section without discarding other fields.
func (u SectionUpdate) Apply(s *ContentSection) {
	if u.Title != nil {
		s.Title = *u.Title
	}
	if u.Content != nil {
		s.Content = *u.Content
	}
	if u.IsRequired != nil {
		s.IsRequired = *u.IsRequired
	}
	if u.TimeEstimateMinutes != nil {
		s.TimeEstimateMinutes = *u.TimeEstimateMinutes
	}
	if u.LearningStyleTags != nil {
		s.LearningStyleTags = *u.LearningStyleTags
	}
	if u.InteractiveElements != nil {
		s.InteractiveElements = *u.InteractiveElements
	}
	if u.KeyPoints != nil {
		s.KeyPoints = *u.KeyPoints
	}
}
