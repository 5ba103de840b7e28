package models

// LearningStyle is one of the four VARK tags used for content targeting.
type LearningStyle string

const (
	StyleVisual         LearningStyle = "visual"
	StyleAuditory       LearningStyle = "auditory"
	StyleReadingWriting LearningStyle = "reading_writing"
	StyleKinesthetic    LearningStyle = "kinesthetic"
)

// StyleInfo is the single presentation table for a learning style. It is
// defined once here and referenced everywhere a style needs an icon, color
// or label.
type StyleInfo struct {
	Icon       string `json:"icon"`
	ColorToken string `json:"color_token"`
	Label      string `json:"label"`
}

var styleInfoTable = map[LearningStyle]StyleInfo{
	StyleVisual:         {Icon: "eye", ColorToken: "blue", Label: "Visual"},
	StyleAuditory:       {Icon: "headphones", ColorToken: "purple", Label: "Auditory"},
	StyleReadingWriting: {Icon: "book-open", ColorToken: "green", Label: "Reading/Writing"},
	StyleKinesthetic:    {Icon: "hand", ColorToken: "orange", Label: "Kinesthetic"},
}

func (s LearningStyle) Valid() bool {
	_, ok := styleInfoTable[s]
	return ok
}

func (s LearningStyle) Info() StyleInfo {
	return styleInfoTable[s]
}

func AllLearningStyles() []LearningStyle {
	return []LearningStyle{StyleVisual, StyleAuditory, StyleReadingWriting, StyleKinesthetic}
}
