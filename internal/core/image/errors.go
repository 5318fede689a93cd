// Package image synthesizes illustrative images for note sections, trying a
// fast external provider first and falling back to Imagen.
package image

import "fmt"

// Kind classifies an image-generation failure.
type Kind string

const (
	KindQuotaExceeded       Kind = "quota_exceeded"
	KindAuthFailed          Kind = "auth_failed"
	KindRateLimited         Kind = "rate_limited"
	KindInsufficientCredits Kind = "insufficient_credits"
	KindGenerationFailed    Kind = "generation_failed"
)

// hints maps each kind to its user-facing guidance.
var hints = map[Kind]string{
	KindQuotaExceeded:       "Quota exceeded. Add a fal.ai key, upgrade your plan, or try again tomorrow.",
	KindAuthFailed:          "Invalid fal.ai API key. Please check your credentials.",
	KindRateLimited:         "Rate limit exceeded. Please try again in a moment.",
	KindInsufficientCredits: "Insufficient credits. Please add credits to your fal.ai account.",
	KindGenerationFailed:    "Failed to generate image. Please try again.",
}

// Error is a classified image-generation failure.
type Error struct {
	Kind  Kind
	cause error
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Hint(), e.cause)
	}
	return e.Hint()
}

// Hint returns the user-facing guidance for this failure.
func (e *Error) Hint() string {
	if h, ok := hints[e.Kind]; ok {
		return h
	}
	return hints[KindGenerationFailed]
}

func (e *Error) Unwrap() error { return e.cause }
