package file

import "regexp"

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// sanitizeFileName keeps object keys shell- and URL-safe. Empty names get
// a placeholder so the key always has a final segment.
func sanitizeFileName(name string) string {
	if name == "" {
		name = "upload"
	}

	return unsafeNameChars.ReplaceAllString(name, "_")
}
