package transcript

import "regexp"

var (
	urlIDPattern  = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([^&\n?#]+)`)
	bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	hostPattern   = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)`)
)

// ExtractVideoID parses a YouTube URL (watch, short, embed, /v/ forms) or a
// bare 11-character video ID. Returns "" when nothing matches.
func ExtractVideoID(input string) string {
	if m := urlIDPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	if bareIDPattern.MatchString(input) {
		return input
	}
	return ""
}

// IsYouTubeURL reports whether input looks like a YouTube URL or a bare
// video ID. Deliberately looser than ExtractVideoID so manual ID entry is
// not rejected at the validation gate.
func IsYouTubeURL(input string) bool {
	return hostPattern.MatchString(input) || bareIDPattern.MatchString(input)
}
