// Package transcript fetches YouTube transcripts through an ordered chain of
// independent sources, normalizing every source into the same result shape.
package transcript

import "strings"

// Segment is one timed piece of a transcript. Start and Duration are seconds.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration,omitempty"`
}

// Result is a normalized transcript from any source. Transcript is the
// authoritative text; when Segments are present it is their space-joined
// concatenation in order.
type Result struct {
	Transcript string    `json:"transcript"`
	Segments   []Segment `json:"segments,omitempty"`
	VideoTitle string    `json:"videoTitle,omitempty"`
	VideoID    string    `json:"videoId"`
	Source     string    `json:"source"`
}

// JoinSegments assembles transcript text from segments, single-space joined.
func JoinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}
