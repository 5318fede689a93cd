// Package notes turns transcript text into structured visual note sections
// using an LLM, with strict all-or-nothing schema validation of the output.
package notes

// Visual element kinds the model may choose from.
const (
	VisualDiagram   = "diagram"
	VisualScribble  = "scribble"
	VisualIcon      = "icon"
	VisualMindmap   = "mindmap"
	VisualFlowchart = "flowchart"
	VisualQuote     = "quote"
	VisualOther     = "other"
)

// VisualElement describes a sketchable visual for a note section.
type VisualElement struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Section is one visual note section. Sections arrive in topic order as
// judged by the model and are never re-ordered downstream.
type Section struct {
	Title     string        `json:"title"`
	Summary   string        `json:"summary"`
	KeyPoints []string      `json:"keyPoints"`
	Visual    VisualElement `json:"visual"`
}
