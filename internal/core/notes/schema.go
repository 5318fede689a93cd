package notes

import "github.com/xeipuuv/gojsonschema"

// sectionsSchemaLoader validates model output against the Section array
// shape. Empty strings fail minLength, so a structurally complete but hollow
// section is rejected the same way a missing field is.
var sectionsSchemaLoader = gojsonschema.NewGoLoader(map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"title", "summary", "keyPoints", "visual"},
		"properties": map[string]any{
			"title":   map[string]any{"type": "string", "minLength": 1},
			"summary": map[string]any{"type": "string", "minLength": 1},
			"keyPoints": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
			"visual": map[string]any{
				"type":     "object",
				"required": []string{"type", "description"},
				"properties": map[string]any{
					"type":        map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
	},
})

// visualNotesSchema is the response schema sent to Gemini so the model is
// constrained to the Section array shape. It is the Gemini generationConfig
// dialect of the JSON Schema above, with per-field prompts for the model.
var visualNotesSchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "STRING",
				"description": "A clear and concise title for this section of the notes.",
			},
			"summary": map[string]any{
				"type":        "STRING",
				"description": "A brief summary of the topic discussed in this section.",
			},
			"keyPoints": map[string]any{
				"type":        "ARRAY",
				"items":       map[string]any{"type": "STRING"},
				"description": "A list of the most important bullet points or takeaways.",
			},
			"visual": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"type": map[string]any{
						"type":        "STRING",
						"description": "Type of visual, e.g. 'diagram', 'scribble', 'icon', 'mindmap', 'flowchart', 'quote'.",
					},
					"description": map[string]any{
						"type":        "STRING",
						"description": "A detailed description of a simple visual element that could be sketched to illustrate the point.",
					},
				},
				"required": []string{"type", "description"},
			},
		},
		"required": []string{"title", "summary", "keyPoints", "visual"},
	},
}
