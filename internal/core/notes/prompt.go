package notes

// notesPrompt frames the transcript for the model. The transcript is appended
// between the trailing dashes.
const notesPrompt = `You are an expert visual note-taker specializing in transforming dense information into clear, engaging, and memorable visual summaries. Your task is to process the following video transcript and generate a structured set of visual notes.

For each distinct topic or key concept in the transcript, create a note section. Each section must include:
1. A clear and concise title.
2. A brief summary of the topic.
3. A list of the most important key points or takeaways.
4. A description of a visual element that could be sketched alongside the text. This visual should be simple and conceptual: icons, simple diagrams (flowcharts, Venn diagrams), mind maps, or symbolic scribbles. Describe what to draw, not the drawing itself.

Your entire output MUST be a JSON array that strictly adheres to the provided schema. Do not add any extra text or explanations outside of the JSON structure.

Here is the transcript:
---
`

// maxTranscriptChars bounds the prompt size for very long inputs.
const maxTranscriptChars = 100000
