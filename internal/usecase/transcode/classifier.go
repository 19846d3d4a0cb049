package transcode

import "strings"

// Kind is the closed set of transcoder variants a declared content type
// can resolve to.
type Kind int

const (
	Unsupported Kind = iota
	Image
	Document
)

// Classify maps a declared MIME type to a transcoder variant. The declared
// type is trusted as given, never sniffed from bytes.
func Classify(contentType string) Kind {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return Image
	case contentType == "application/pdf":
		return Document
	default:
		return Unsupported
	}
}
